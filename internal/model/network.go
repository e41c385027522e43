package model

import "encoding/json"

// Network models the unit's network configuration. Like FrontPanel, it is
// a singleton (spec.md §4.1: "no identifier for singletons: network,
// front-panel, current configuration").
type Network struct {
	dhcpv4 Nullable[bool]
	sddp   Nullable[bool]
	eui48  Nullable[EUI48]
	host   Nullable[Address]
	router Nullable[Address]
	mask   Nullable[Address]
}

func (n Network) DHCPv4() (bool, error)    { return n.dhcpv4.Get() }
func (n Network) SDDP() (bool, error)      { return n.sddp.Get() }
func (n Network) EUI48() (EUI48, error)    { return n.eui48.Get() }
func (n Network) HostAddress() (Address, error)          { return n.host.Get() }
func (n Network) DefaultRouterAddress() (Address, error) { return n.router.Get() }
func (n Network) Netmask() (Address, error)              { return n.mask.Get() }

func (n *Network) SetDHCPv4(on bool) SetOutcome { return n.dhcpv4.Set(on) }
func (n *Network) SetSDDP(on bool) SetOutcome   { return n.sddp.Set(on) }
func (n *Network) SetEUI48(mac EUI48) SetOutcome { return n.eui48.Set(mac) }
func (n *Network) SetHostAddress(a Address) SetOutcome          { return n.host.Set(a) }
func (n *Network) SetDefaultRouterAddress(a Address) SetOutcome { return n.router.Set(a) }
func (n *Network) SetNetmask(a Address) SetOutcome              { return n.mask.Set(a) }

type wireNetwork struct {
	DHCPv4 Nullable[bool]    `json:"dhcpv4"`
	SDDP   Nullable[bool]    `json:"sddp"`
	EUI48  Nullable[EUI48]   `json:"eui48"`
	Host   Nullable[Address] `json:"host"`
	Router Nullable[Address] `json:"router"`
	Mask   Nullable[Address] `json:"mask"`
}

func (n Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireNetwork{
		DHCPv4: n.dhcpv4, SDDP: n.sddp, EUI48: n.eui48,
		Host: n.host, Router: n.router, Mask: n.mask,
	})
}

func (n *Network) UnmarshalJSON(data []byte) error {
	var w wireNetwork
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.dhcpv4, n.sddp, n.eui48 = w.DHCPv4, w.SDDP, w.EUI48
	n.host, n.router, n.mask = w.Host, w.Router, w.Mask
	return nil
}
