package infrastructure

import (
	"strings"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

const secretMask = "***"

// RedactedCommand renders an invocation as a shell-safe display string with
// every secret value masked. This is for logging only; exec receives the
// unmasked argument slice directly and never goes through a shell.
func RedactedCommand(inv *domain.EngineInvocation) string {
	var sb strings.Builder
	sb.WriteString(shellQuote(inv.Binary))
	for _, arg := range inv.Args {
		masked := arg
		for _, secret := range inv.Secrets {
			if secret != "" {
				masked = strings.ReplaceAll(masked, secret, secretMask)
			}
		}
		sb.WriteByte(' ')
		sb.WriteString(shellQuote(masked))
	}
	return sb.String()
}

// shellQuote single-quotes a string when it contains characters a shell
// would interpret, handling embedded single quotes specially.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\r'\"$`\\!*?[](){}|;<>&~#%") {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, c := range s {
		if c == '\'' {
			sb.WriteString(`'"'"'`)
		} else {
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
