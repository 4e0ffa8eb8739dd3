package pipeline

// Help token forms recognized anywhere in an argument list.
const (
	helpShort      = "-h"
	helpLong       = "--help"
	helpAll        = "--help-all"
	helpPluginFlag = "--help-plugin"
)

// IsHelpRequested scans tokens for the conventional help flags. It returns
// whether help was requested, whether per-plugin details were asked for
// (--help-all), and the plugin name following --help-plugin, if any.
func IsHelpRequested(tokens []string) (requested bool, details bool, pluginName string) {
	for i, token := range tokens {
		switch token {
		case helpShort, helpLong:
			return true, false, ""
		case helpAll:
			return true, true, ""
		case helpPluginFlag:
			if i < len(tokens)-1 {
				pluginName = tokens[i+1]
			}
			return true, false, pluginName
		}
	}
	return false, false, ""
}
