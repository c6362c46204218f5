package launch

import "time"

// State — стадия попытки запуска.
type State int

const (
	Idle State = iota
	Validating
	ResolvingImage
	BuildingTransaction
	AwaitingWalletSignature
	RegisteringWithPlatform
	Broadcasting
	Recording
	Done
	Failed
)

var stateNames = [...]string{
	Idle:                    "idle",
	Validating:              "validating",
	ResolvingImage:          "resolving_image",
	BuildingTransaction:     "building_transaction",
	AwaitingWalletSignature: "awaiting_wallet_signature",
	RegisteringWithPlatform: "registering_with_platform",
	Broadcasting:            "broadcasting",
	Recording:               "recording",
	Done:                    "done",
	Failed:                  "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal сообщает, закончилась ли попытка.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Transition передаётся наблюдателям при каждой смене стадии.
type Transition struct {
	From     State
	To       State
	Wallet   string
	Platform Platform
	Reason   string
	At       time.Time
	// Elapsed — время, проведённое в From.
	Elapsed time.Duration
}

// Observer получает переходы синхронно, в порядке их возникновения.
type Observer func(Transition)
