package prompter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/reglet-dev/permflow/domain/ports"
)

var (
	_ ports.DialogPresenter   = (*CliPrompter)(nil)
	_ ports.DeviceInteraction = (*CliPrompter)(nil)
)

// CliPrompter renders flow dialogs and device prompts in a terminal.
type CliPrompter struct {
	in  io.Reader
	rd  *bufio.Reader
	out io.Writer
}

// NewCliPrompter creates a new CliPrompter.
func NewCliPrompter(in io.Reader, out io.Writer) *CliPrompter {
	p := &CliPrompter{in: in, out: out}
	if in != nil {
		p.rd = bufio.NewReader(in)
	}
	return p
}

// IsInteractive checks if the input is a terminal.
func (p *CliPrompter) IsInteractive() bool {
	if f, ok := p.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// Present shows a dialog and reports the chosen action.
// Dialogs are not cancelable, so invalid input asks again. When input ends
// the last action is picked, which is the dismissive one for flow dialogs.
func (p *CliPrompter) Present(_ context.Context, d entities.Dialog, choose func(entities.DialogAction)) {
	if len(d.Actions) == 0 {
		return
	}
	_, _ = fmt.Fprintf(p.out, "\n%s\n", d.Message)
	for i, a := range d.Actions {
		_, _ = fmt.Fprintf(p.out, "  [%d] %s\n", i+1, a.Label)
	}

	for {
		_, _ = fmt.Fprintf(p.out, "Choose: ")
		text, err := p.readLine()
		if err != nil {
			choose(d.Actions[len(d.Actions)-1])
			return
		}
		if a, ok := matchAction(d, text); ok {
			choose(a)
			return
		}
		_, _ = fmt.Fprintf(p.out, "Please pick one of the listed options.\n")
	}
}

func matchAction(d entities.Dialog, text string) (entities.DialogAction, bool) {
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(d.Actions) {
		return d.Actions[n-1], true
	}
	for _, a := range d.Actions {
		if strings.EqualFold(text, string(a.ID)) || strings.EqualFold(text, a.Label) {
			return a, true
		}
	}
	return entities.DialogAction{}, false
}

// AskNative shows the platform's permission prompt for one capability.
func (p *CliPrompter) AskNative(c entities.Capability) (entities.NativeDecision, error) {
	for {
		_, _ = fmt.Fprintf(p.out, "Allow access to %s (%s)? [y/n/never]: ", c.ShortName(), c)
		text, err := p.readLine()
		if err != nil {
			return entities.DecisionDeny, err
		}
		switch strings.ToLower(text) {
		case "y", "yes":
			return entities.DecisionAllow, nil
		case "n", "no":
			return entities.DecisionDeny, nil
		case "never":
			return entities.DecisionDenyNeverAsk, nil
		}
	}
}

// AskSettings lets the user toggle one capability on the settings screen.
// An empty answer keeps the current status.
func (p *CliPrompter) AskSettings(c entities.Capability, current entities.GrantStatus) (entities.GrantStatus, error) {
	for {
		_, _ = fmt.Fprintf(p.out, "  %s is %s. Allow? [y/n, enter keeps]: ", c, current)
		text, err := p.readLine()
		if err != nil {
			return current, err
		}
		switch strings.ToLower(text) {
		case "":
			return current, nil
		case "y", "yes":
			return entities.GrantGranted, nil
		case "n", "no":
			return entities.GrantDenied, nil
		}
	}
}

// readLine returns the next trimmed input line. A final line without a
// newline is returned before io.EOF.
func (p *CliPrompter) readLine() (string, error) {
	if p.rd == nil {
		return "", io.EOF
	}
	line, err := p.rd.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// FormatNonInteractiveError creates a helpful error.
func (p *CliPrompter) FormatNonInteractiveError(cfg entities.FlowConfig) error {
	return fmt.Errorf("permission flow for %s needs an interactive terminal to request %d capabilities",
		cfg.SubjectID, len(cfg.Capabilities))
}
