package server

import (
	"rush-and-ruin/server/internal/net/proto"
	"rush-and-ruin/server/internal/sim"
)

// DiagnosticsPlayer summarizes session liveness for /diagnostics.
type DiagnosticsPlayer struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
	Tick          uint64 `json:"tick"`
}

// rewardNotices converts drained kill rewards into their wire form.
func rewardNotices(drops []sim.RewardDrop) []proto.RewardNotice {
	if len(drops) == 0 {
		return nil
	}
	out := make([]proto.RewardNotice, 0, len(drops))
	for _, d := range drops {
		out = append(out, proto.RewardNotice{
			EnemyID:   d.EnemyID,
			Archetype: d.Archetype.String(),
			XP:        d.XPValue,
			X:         d.X,
			Y:         d.Y,
		})
	}
	return out
}
