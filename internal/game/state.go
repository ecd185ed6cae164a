// Package game holds the Bàu Cua rules: the round lifecycle, the dice and the
// payout table. Nothing here touches storage.
package game

import (
	"fmt" // Error formatting

	"tetconnect/internal/domain" // Importing domain models
)

// Events that move a round forward.
const (
	EvtRoll   = "roll"
	EvtSettle = "settle"
)

// NextStatus returns the status a round moves to when evt happens in cur.
func NextStatus(cur, evt string) (string, error) {
	switch cur {
	case domain.RoundBetting:
		if evt == EvtRoll {
			return domain.RoundRolling, nil
		}
	case domain.RoundRolling:
		if evt == EvtSettle {
			return domain.RoundSettled, nil
		}
	}
	return cur, fmt.Errorf("invalid transition: %s --%s--> ?", cur, evt)
}

// Action is what a start request does given the family's latest round.
type Action int

const (
	ActionCreate Action = iota
	ActionResume
	ActionReject
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionResume:
		return "resume"
	case ActionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Decision is the outcome of DecideStart. Next is only meaningful for ActionCreate.
type Decision struct {
	Action Action
	Next   int
}

// DecideStart resumes a betting round, rejects while a roll is in flight and
// otherwise asks for the next round number. latest may be nil.
func DecideStart(latest *domain.Round) Decision {
	if latest == nil {
		return Decision{Action: ActionCreate, Next: 1}
	}
	switch latest.Status {
	case domain.RoundBetting:
		return Decision{Action: ActionResume}
	case domain.RoundRolling:
		return Decision{Action: ActionReject}
	default:
		return Decision{Action: ActionCreate, Next: latest.RoundNumber + 1}
	}
}

// Latest picks the round with the highest number from a snapshot, ignoring
// the order the rounds were read in.
func Latest(rounds []domain.Round) *domain.Round {
	var best *domain.Round
	for i := range rounds {
		if best == nil || rounds[i].RoundNumber > best.RoundNumber {
			best = &rounds[i]
		}
	}
	return best
}
