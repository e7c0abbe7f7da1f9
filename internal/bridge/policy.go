package bridge

import "github.com/guilhermegouw/pomo/internal/protocol"

// Policy decides what a host failure means for the UI.
type Policy int

const (
	// PolicyLog records the failure and sends nothing to the UI.
	PolicyLog Policy = iota
	// PolicyPropagate also replies with a CommandFailedMsg.
	PolicyPropagate
)

func (p Policy) String() string {
	switch p {
	case PolicyPropagate:
		return "propagate"
	default:
		return "log"
	}
}

type rule struct {
	policy Policy
	// audit journals successful dispatches too.
	audit bool
}

var rules = map[protocol.Name]rule{
	protocol.NamePlaySound:             {policy: PolicyLog},
	protocol.NameHideWindow:            {policy: PolicyLog},
	protocol.NameMinimizeWindow:        {policy: PolicyLog},
	protocol.NameCloseWindow:           {policy: PolicyLog},
	protocol.NameNotify:                {policy: PolicyPropagate, audit: true},
	protocol.NameUpdateConfig:          {policy: PolicyPropagate, audit: true},
	protocol.NameUpdateSessionStatus:   {policy: PolicyLog},
	protocol.NameUpdateCurrentState:    {policy: PolicyPropagate},
	protocol.NameChooseSoundFile:       {policy: PolicyPropagate},
	protocol.NameGetInitData:           {policy: PolicyPropagate},
	protocol.NameHandleExternalMessage: {policy: PolicyLog},
	protocol.NameQuit:                  {policy: PolicyLog},
}

// PolicyFor returns the failure policy for a command. Unrecognized names
// are logged.
func PolicyFor(name protocol.Name) Policy {
	return rules[name].policy
}

func audited(name protocol.Name) bool {
	return rules[name].audit
}
