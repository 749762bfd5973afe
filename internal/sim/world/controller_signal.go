package world

import (
	"github.com/bovard/battlecode-server-2016/internal/game"
	"github.com/bovard/battlecode-server-2016/internal/protocol"
)

// ***** radio channels *****

func assertValidChannel(channel int) error {
	if channel < 0 || channel > game.BroadcastMaxChannels {
		return game.NewActionError(game.ErrCantDoThatBro,
			"channels run 0 to %d, got %d", game.BroadcastMaxChannels, channel)
	}
	return nil
}

// Broadcast stages a radio write. The writer reads it back immediately;
// the rest of the team sees it from the next turn on.
func (rc *RobotController) Broadcast(channel int, data int32) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if err := assertValidChannel(channel); err != nil {
		return err
	}
	rc.robot.queueBroadcast(channel, data)
	return nil
}

// ReadBroadcast returns the robot's own queued write for the channel if
// any, else the team array.
func (rc *RobotController) ReadBroadcast(channel int) (int32, error) {
	if err := assertValidChannel(channel); err != nil {
		return 0, err
	}
	if v, ok := rc.robot.queuedBroadcast(channel); ok {
		return v, nil
	}
	return rc.gw.team(rc.robot.Team).radio[channel], nil
}

// HasBroadcasted reports whether this robot wrote the radio this turn.
func (rc *RobotController) HasBroadcasted() bool { return rc.robot.hasBroadcasted }

// ***** spatial signals *****

// BasicSignalCount is the number of basic signals sent this turn.
func (rc *RobotController) BasicSignalCount() int { return rc.robot.basicSignalCount }

// MessageSignalCount is the number of message signals sent this turn.
func (rc *RobotController) MessageSignalCount() int { return rc.robot.messageSignalCount }

// signalRangeSurcharge prices casting past the sender's own sight: a base
// plus a share of the fractional excess, on both delay counters.
func (gw *GameWorld) signalRangeSurcharge(r *InternalRobot, radiusSquared int) float64 {
	sight := gw.effectiveSensorRadiusSquared(r)
	if radiusSquared <= sight || sight <= 0 {
		return 0
	}
	excess := float64(radiusSquared-sight) / float64(sight)
	return game.BroadcastBaseDelayIncrease + game.BroadcastAdditionalDelayIncrease*excess
}

// BroadcastSignal emits a basic (message-less) signal to every robot of
// any team within radiusSquared. A failed call does not count against the
// per-turn cap.
func (rc *RobotController) BroadcastSignal(radiusSquared int) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if radiusSquared < 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "negative signal radius")
	}
	if rc.robot.basicSignalCount >= game.BasicSignalsPerTurn {
		return game.NewActionError(game.ErrCantDoThatBro,
			"already sent %d basic signals this turn", rc.robot.basicSignalCount)
	}
	rc.robot.basicSignalCount++
	rc.castSignal(radiusSquared, nil)
	return nil
}

// BroadcastMessageSignal is the two-word variant with its own cap.
func (rc *RobotController) BroadcastMessageSignal(m1, m2 int32, radiusSquared int) error {
	if err := rc.assertAlive(); err != nil {
		return err
	}
	if radiusSquared < 0 {
		return game.NewActionError(game.ErrCantDoThatBro, "negative signal radius")
	}
	if rc.robot.messageSignalCount >= game.MessageSignalsPerTurn {
		return game.NewActionError(game.ErrCantDoThatBro,
			"already sent %d message signals this turn", rc.robot.messageSignalCount)
	}
	rc.robot.messageSignalCount++
	msg := [2]int32{m1, m2}
	rc.castSignal(radiusSquared, &msg)
	return nil
}

// castSignal charges the range surcharge, logs the emission, and delivers
// copies into every in-range inbox in id order.
func (rc *RobotController) castSignal(radiusSquared int, message *[2]int32) {
	sender := rc.robot
	if surcharge := rc.gw.signalRangeSurcharge(sender, radiusSquared); surcharge > 0 {
		sender.addDelays(surcharge, surcharge)
	}

	var logged *[2]int32
	if message != nil {
		m := *message
		logged = &m
	}
	rc.gw.emit(protocol.BroadcastSignal{
		ID: sender.ID, Team: sender.Team.String(), Loc: sender.Location,
		RadiusSquared: radiusSquared, Message: logged,
	})

	s := Signal{ID: sender.ID, Team: sender.Team, Location: sender.Location, Message: message}
	for _, r := range rc.gw.AllObjects() {
		if r.ID == sender.ID {
			continue
		}
		if r.Location.DistanceSquaredTo(sender.Location) <= radiusSquared {
			r.deliverSignal(s)
		}
	}
}

// ReadSignal pops the oldest inbox entry; ok is false on an empty queue.
func (rc *RobotController) ReadSignal() (Signal, bool) {
	return rc.robot.readSignal()
}

// EmptySignalQueue returns the whole inbox, oldest first, and clears it.
func (rc *RobotController) EmptySignalQueue() []Signal {
	return rc.robot.emptySignalQueue()
}
