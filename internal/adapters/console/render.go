// Package console dibuja los paneles que imprime el CLI.
package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
)

var (
	colorFg     = lipgloss.Color("#c0caf5")
	colorMuted  = lipgloss.Color("#565f89")
	colorOK     = lipgloss.Color("#9ece6a")
	colorWarn   = lipgloss.Color("#e0af68")
	colorBad    = lipgloss.Color("#f7768e")
	colorAccent = lipgloss.Color("#d4a373")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(24)

	styleValue = lipgloss.NewStyle().
			Foreground(colorFg)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

func Banner(version string) string {
	title := styleTitle.Render("TFT Auto Accept")
	sub := lipgloss.NewStyle().Foreground(colorMuted).Render("queuebot " + version)
	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, title, sub))
}

// Panel renderiza "Clave: valor" por línea, como lo devuelve service.Describe.
func Panel(title, body string) string {
	rows := []string{styleTitle.Render(title)}
	for _, line := range strings.Split(body, "\n") {
		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			rows = append(rows, styleValue.Render(line))
			continue
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, styleLabel.Render(k), styleValue.Render(v)))
	}
	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// StatusPanel muestra el estado de la instancia que corre.
func StatusPanel(version string, connected, paused bool) string {
	client := lipgloss.NewStyle().Foreground(colorBad).Render("waiting for client")
	if connected {
		client = lipgloss.NewStyle().Foreground(colorOK).Render("connected")
	}
	monitor := lipgloss.NewStyle().Foreground(colorOK).Render("active")
	if paused {
		monitor = lipgloss.NewStyle().Foreground(colorWarn).Render("paused")
	}
	rows := []string{
		styleTitle.Render("queuebot " + version),
		lipgloss.JoinHorizontal(lipgloss.Top, styleLabel.Render("League client"), client),
		lipgloss.JoinHorizontal(lipgloss.Top, styleLabel.Render("Monitoring"), monitor),
	}
	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// QueueList marca con ✔ las colas permitidas; con allow-list vacía todas lo están.
func QueueList(entries []service.CatalogEntry, acceptsAll bool) string {
	rows := []string{styleTitle.Render("Queues")}
	for _, e := range entries {
		mark := lipgloss.NewStyle().Foreground(colorMuted).Render("·")
		if acceptsAll || e.Allowed {
			mark = lipgloss.NewStyle().Foreground(colorOK).Render("✔")
		}
		id := lipgloss.NewStyle().Foreground(colorMuted).Width(6).Render(fmt.Sprint(e.ID))
		rows = append(rows, mark+" "+id+styleValue.Render(e.Name))
	}
	if acceptsAll {
		rows = append(rows, lipgloss.NewStyle().Foreground(colorMuted).Render("all queues allowed"))
	}
	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
