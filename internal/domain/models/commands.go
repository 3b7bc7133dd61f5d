package models

import "strings"

// CommandType enumerates the chat commands operators can send.
type CommandType string

const (
	CommandAdd     CommandType = "add"
	CommandAdjust  CommandType = "adjust"
	CommandSell    CommandType = "sell"
	CommandRemove  CommandType = "remove"
	CommandStock   CommandType = "stock"
	CommandList    CommandType = "list"
	CommandValue   CommandType = "value"
	CommandReport  CommandType = "report"
	CommandUnknown CommandType = "unknown"
)

var knownCommands = map[string]CommandType{
	string(CommandAdd):    CommandAdd,
	string(CommandAdjust): CommandAdjust,
	string(CommandSell):   CommandSell,
	string(CommandRemove): CommandRemove,
	string(CommandStock):  CommandStock,
	string(CommandList):   CommandList,
	string(CommandValue):  CommandValue,
	string(CommandReport): CommandReport,
}

// Command is a parsed chat instruction.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand splits a message into a command and its arguments. Only the
// command word is case-insensitive; arguments keep their case because they
// carry identifiers and product names.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(message)
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	if t, ok := knownCommands[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
