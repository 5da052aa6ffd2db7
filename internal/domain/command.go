package domain

// CommandType classifies what the operator wants to do.
type CommandType int

// Payload carries the time of day for CommandSetEntry and CommandSetExit,
// and the mode for CommandTax. CommandEnter admits at the current instant.
const (
	CommandUnknown CommandType = iota
	CommandEnter
	CommandSetEntry
	CommandSetExit
	CommandClearExit
	CommandAddItem
	CommandRemoveItem
	CommandTax
	CommandStatus
	CommandMenu
	CommandReceipt
	CommandCheckout
	CommandHistory
	CommandReset
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandEnter:
		return "enter"
	case CommandSetEntry:
		return "set_entry"
	case CommandSetExit:
		return "set_exit"
	case CommandClearExit:
		return "clear_exit"
	case CommandAddItem:
		return "add_item"
	case CommandRemoveItem:
		return "remove_item"
	case CommandTax:
		return "tax"
	case CommandStatus:
		return "status"
	case CommandMenu:
		return "menu"
	case CommandReceipt:
		return "receipt"
	case CommandCheckout:
		return "checkout"
	case CommandHistory:
		return "history"
	case CommandReset:
		return "reset"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command represents a parsed operator action.
type Command struct {
	Type     CommandType
	Category Category // add/remove only
	Price    int      // add/remove only
	Payload  string   // optional argument, e.g. a time of day
}
