package protocol

import (
	"encoding/json"
	"testing"

	"github.com/bovard/battlecode-server-2016/internal/game"
)

func TestEveryVariantHasKnownKind(t *testing.T) {
	all := []Signal{
		MovementSignal{}, AttackSignal{}, SpawnSignal{}, MineSignal{},
		ResearchSignal{}, CastSignal{}, BroadcastSignal{}, ClearRubbleSignal{},
		RepairSignal{}, ActivateSignal{}, SelfDestructSignal{}, InfectionSignal{},
		DeathSignal{}, TeamResourceSignal{}, LocationSupplyChangeSignal{},
		IndicatorDotSignal{}, IndicatorLineSignal{}, IndicatorStringSignal{},
		MatchObservationSignal{},
	}
	if len(all) != len(knownKinds) {
		t.Fatalf("variant count %d != registry size %d", len(all), len(knownKinds))
	}
	seen := map[string]bool{}
	for _, s := range all {
		k := s.SignalKind()
		if !IsKnownKind(k) {
			t.Fatalf("kind %q not registered", k)
		}
		if seen[k] {
			t.Fatalf("kind %q duplicated", k)
		}
		seen[k] = true
	}
	if IsKnownKind("TELEPORT") {
		t.Fatal("unknown kind accepted")
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := [2]int32{17, -9}
	in := Wrap(BroadcastSignal{
		ID: 42, Team: "A", Loc: game.Loc(3, 4), RadiusSquared: 24, Message: &msg,
	})
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw RawEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if raw.Kind != KindBroadcast {
		t.Fatalf("kind=%q", raw.Kind)
	}
	var out BroadcastSignal
	if err := json.Unmarshal(raw.Data, &out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if out.ID != 42 || out.Message == nil || out.Message[1] != -9 {
		t.Fatalf("round trip lost data: %+v", out)
	}
}

func TestDeathSignalCauses(t *testing.T) {
	b, err := json.Marshal(Wrap(DeathSignal{
		ID: 7, Loc: game.Loc(1, 1), Type: "SOLDIER", Team: "B", Cause: CauseTurret,
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw RawEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var out DeathSignal
	if err := json.Unmarshal(raw.Data, &out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if out.Cause != CauseTurret {
		t.Fatalf("cause=%q", out.Cause)
	}
}
