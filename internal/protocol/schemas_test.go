package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

func TestRoundFrame_MatchesSchema(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "round.schema.json"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	msg := protocol.RoundMsg{
		Type:  protocol.TypeRound,
		Round: 12,
		Signals: protocol.WrapAll([]protocol.Signal{
			protocol.MovementSignal{ID: 3, NewLoc: game.Loc(1, 0), Delay: 2},
			protocol.AttackSignal{ID: 4, TargetLoc: game.Loc(1, 0)},
			protocol.DeathSignal{ID: 3, Loc: game.Loc(1, 0), Type: "SOLDIER", Team: "A", Cause: protocol.CauseAttack},
		}),
		Digest: "deadbeef",
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestRoundFrame_SchemaRejectsUnknownKind(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "round.schema.json"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var v any
	_ = json.Unmarshal([]byte(`{
	  "type":"ROUND","round":1,"digest":"x",
	  "signals":[{"kind":"TELEPORT","data":{}}]
	}`), &v)
	if err := schema.Validate(v); err == nil {
		t.Fatal("unknown kind validated")
	}
}
