package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	links driven.LinkBuilder
	copy  func(text string) error
	open  func(url string) error
}

// NewResultActionService creates a new result action service.
func NewResultActionService(links driven.LinkBuilder) *ResultActionService {
	return &ResultActionService{
		links: links,
		copy:  copyToClipboard,
		open:  openURL,
	}
}

// CopyCitation copies the card's compliance line to the system clipboard.
func (s *ResultActionService) CopyCitation(_ context.Context, card *domain.ResultCard) error {
	if card == nil {
		return fmt.Errorf("card is nil")
	}
	return s.copy(domain.NewReportItem(*card, "").Line())
}

// CopyText copies text to the system clipboard.
func (s *ResultActionService) CopyText(_ context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("nothing to copy")
	}
	return s.copy(text)
}

// OpenManual opens the manual viewer at the card's page.
func (s *ResultActionService) OpenManual(_ context.Context, card *domain.ResultCard) error {
	if card == nil {
		return fmt.Errorf("card is nil")
	}
	link := card.LinkHref
	if link == "" {
		link = s.links.ManualLink(card.Page)
	}
	return s.open(link)
}

// copyToClipboard copies text to the system clipboard using OS-specific commands.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("pbcopy")
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
		}
	case osWindows:
		cmd = exec.Command("cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", url)
	case osLinux:
		cmd = exec.Command("xdg-open", url)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
