package cli

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser opens url in the default browser of the platform.
// It can be replaced, for example to print the url instead.
var OpenBrowser = func(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		return fmt.Errorf("unable to open browser on %s, please visit %s", runtime.GOOS, url)
	}
	return cmd.Start()
}
