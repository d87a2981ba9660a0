package natsdomain

type ActionType string

const (
	MsgActionConfirmed ActionType = "confirmed"
	MsgActionExpired   ActionType = "expired"
)

// subjects for nats

// .js. - jetstream
var SubjectsJetStream = [...]string{"deposits.js.confirmed", "deposits.js.expired"}

type SubjJsType uint8

// nats jetstream subjects
const (
	SubjJsDepositConfirmed SubjJsType = iota
	SubjJsDepositExpired
)

func (s SubjJsType) String() string {
	return SubjectsJetStream[s]
}
