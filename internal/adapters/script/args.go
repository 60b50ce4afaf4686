package script

// SplitArgs splits a command line on spaces. Single or double quotes group
// a token and are dropped; a quote character inside the other kind of
// quotes is literal. No escape sequences are recognised.
func SplitArgs(command string) []string {
	var (
		args  []string
		quote byte
		start int
	)
	for i := 0; i <= len(command); i++ {
		boundary := i == len(command)
		if !boundary {
			switch c := command[i]; {
			case (c == '\'' || c == '"') && quote == 0:
				quote = c
				boundary = true
			case quote != 0 && c == quote:
				quote = 0
				boundary = true
			case c == ' ' && quote == 0:
				boundary = true
			}
		}
		if boundary {
			if i > start {
				args = append(args, command[start:i])
			}
			start = i + 1
		}
	}
	return args
}
