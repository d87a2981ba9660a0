package domain

import "strings"

type Network uint8

const (
	NETWORK_NONE Network = iota // only for init
	NETWORK_TRC20
	NETWORK_BEP20
	NETWORK_ERC20
)

var Networks = [...]string{"", "TRC20", "BEP20", "ERC20"}

func (n Network) ToString() string {
	return Networks[n]
}

func (n Network) IsNone() bool {
	return n == NETWORK_NONE
}

func StrToNetwork(s string) Network {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, networkName := range Networks {
		if i == 0 {
			continue
		}
		if s == networkName {
			return Network(i)
		}
	}
	return NETWORK_NONE
}
