// Package desktop envía notificaciones nativas del sistema.
package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const (
	AppName        = "TFT Auto Accept"
	DefaultTimeout = 10 * time.Second

	// PowerShellAppID es un AUMID registrado en cualquier Windows; los toasts
	// con un id sin registrar se descartan sin error.
	PowerShellAppID = `{1AC14E77-02E7-4E5D-B744-2EB1AE5198B7}\WindowsPowerShell\v1.0\powershell.exe`

	title = "Queue Popped!"
)

// Notifier lanza el toast con la herramienta del sistema operativo.
type Notifier struct {
	AppName string
	Icon    string
	Timeout time.Duration
	AppID   string // sólo Windows (AUMID)

	goos string
	run  func(ctx context.Context, name string, args ...string) error
}

func New(icon string) *Notifier {
	return &Notifier{
		AppName: AppName,
		Icon:    icon,
		Timeout: DefaultTimeout,
		AppID:   PowerShellAppID,
		goos:    runtime.GOOS,
		run:     runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// QueuePopped muestra "Accepting match for <mode>."
func (n *Notifier) QueuePopped(ctx context.Context, gameMode string) error {
	return n.Send(ctx, title, fmt.Sprintf("Accepting match for %s.", gameMode))
}

func (n *Notifier) Send(ctx context.Context, title, message string) error {
	name, args, err := n.command(title, message)
	if err != nil {
		return err
	}
	return n.run(ctx, name, args...)
}

func (n *Notifier) command(title, message string) (string, []string, error) {
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf(
			`display notification "%s" with title "%s" subtitle "%s" sound name "default"`,
			escapeAppleScript(message), escapeAppleScript(title), escapeAppleScript(n.AppName),
		)
		return "osascript", []string{"-e", script}, nil

	case "linux", "freebsd", "openbsd", "netbsd":
		args := []string{"-a", n.AppName, "-t", fmt.Sprint(n.Timeout.Milliseconds())}
		if n.Icon != "" {
			args = append(args, "-i", n.Icon)
		}
		return "notify-send", append(args, title, message), nil

	case "windows":
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", n.toastScript(title, message)}, nil

	default:
		return "", nil, fmt.Errorf("desktop notifications not supported on %s", n.goos)
	}
}

// toastScript usa la API WinRT de toasts; el toast expira a los Timeout.
func (n *Notifier) toastScript(title, message string) string {
	image := ""
	if n.Icon != "" {
		image = fmt.Sprintf(`<image placement="appLogoOverride" src="%s"/>`, escapeXML(n.Icon))
	}
	xml := fmt.Sprintf(
		`<toast><visual><binding template="ToastGeneric"><text>%s</text><text>%s</text><text placement="attribution">%s</text>%s</binding></visual></toast>`,
		escapeXML(title), escapeXML(message), escapeXML(n.AppName), image,
	)
	appID := n.AppID
	if appID == "" {
		appID = PowerShellAppID
	}
	return strings.Join([]string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null`,
		`[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null`,
		`$xml = New-Object Windows.Data.Xml.Dom.XmlDocument`,
		fmt.Sprintf(`$xml.LoadXml('%s')`, escapePowerShell(xml)),
		`$toast = New-Object Windows.UI.Notifications.ToastNotification $xml`,
		fmt.Sprintf(`$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d)`, int(n.Timeout.Seconds())),
		fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)`, escapePowerShell(appID)),
	}, "; ")
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, `'`, `''`)
}

var xmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
