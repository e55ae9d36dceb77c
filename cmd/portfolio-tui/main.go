package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aTrapDeer/portfolio/internal/client"
	"github.com/aTrapDeer/portfolio/internal/tui"
)

func main() {
	defaultAPI := os.Getenv("PORTFOLIO_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8081"
	}
	apiURL := flag.String("api", defaultAPI, "base URL of the portfolio API")
	flag.Parse()

	p := tea.NewProgram(tui.New(client.New(*apiURL)), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "portfolio-tui:", err)
		os.Exit(1)
	}
}
