package entity

type CommandType string

const (
	CommandEarn   CommandType = "earn"
	CommandRedeem CommandType = "redeem"
)

func (t CommandType) Valid() bool {
	return t == CommandEarn || t == CommandRedeem
}

type Command struct {
	Type       CommandType
	CustomerID string
	Points     int64
}
