package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/scenarch/scenarch/pkg/client"
	"github.com/scenarch/scenarch/pkg/domain"
	"github.com/scenarch/scenarch/pkg/prefs"
	"github.com/scenarch/scenarch/pkg/repository"
	"github.com/scenarch/scenarch/pkg/session"
)

// App is the interactive command loop. It owns the local preference store,
// the session coordinator and the server client.
type App struct {
	prefs *prefs.Store
	coord *session.Coordinator
	api   *client.Client
	repos *repository.Repositories
	name  string
	out   io.Writer

	lastScene string
}

// Run reads commands from r until EOF or ctx cancellation.
func (a *App) Run(ctx context.Context, r io.Reader) error {
	a.printf("scenarch client, type \"help\" for commands")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}

		if err := a.dispatch(ctx, fields[0], fields[1:]); err != nil {
			a.printf("error: %v", err)
		}
	}
	return scanner.Err()
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "show":
		a.printShow()
		return nil
	case "cycle":
		return a.cmdCycle(ctx, args)
	case "add":
		return a.cmdCustom(ctx, args, a.prefs.AddCustom)
	case "remove":
		return a.cmdCustom(ctx, args, a.prefs.RemoveCustom)
	case "role":
		return a.cmdRole(ctx, args)
	case "intensity":
		return a.cmdIntensity(ctx, args)
	case "nogo":
		return a.prefs.SetNoGoList(ctx, args)
	case "reset":
		return a.prefs.Reset(ctx)
	case "prompt":
		res, err := a.coord.AssemblePrompt()
		if err != nil {
			return err
		}
		a.printf("%s", res.Text)
		return nil
	case "generate":
		return a.cmdGenerate(ctx)
	case "continue":
		return a.cmdContinue(ctx, args)
	case "save":
		return a.cmdSave(ctx, args)
	case "list":
		return a.cmdList(ctx)
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		return a.repos.Scenario.Delete(ctx, args[0])
	case "template":
		return a.cmdTemplate(ctx, args)
	case "together":
		return a.cmdTogether(ctx, args)
	case "remote":
		return a.cmdRemote(ctx, args)
	case "cancel":
		a.coord.CancelSession(ctx)
		a.printf("session canceled")
		return nil
	case "export":
		return a.cmdExport(ctx, args)
	case "import":
		return a.cmdImport(ctx, args)
	case "models":
		return a.cmdModels(ctx)
	case "load":
		if len(args) != 2 {
			return fmt.Errorf("usage: load <filename> <model-name>")
		}
		if err := a.api.LoadModel(ctx, args[0], args[1]); err != nil {
			return err
		}
		a.printf("model %s loaded", args[1])
		return nil
	case "speak":
		return a.cmdSpeak(ctx, args)
	case "transcribe":
		return a.cmdTranscribe(ctx, args)
	case "health":
		h, err := a.api.HealthCheck(ctx)
		if err != nil {
			return err
		}
		a.printf("status: %s", h.Status)
		for name, state := range h.Services {
			a.printf("  %s: %s", name, state)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
}

func parseCategory(s string) (domain.Category, error) {
	for _, c := range domain.Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, one of: toys, kinks, outfits, settings", s)
}

func (a *App) cmdCycle(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cycle <category> <item>")
	}
	c, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	item := strings.Join(args[1:], " ")
	st, err := a.prefs.Cycle(ctx, c, item)
	if err != nil {
		return err
	}
	if st == domain.StateUnset {
		a.printf("%s: untagged", item)
	} else {
		a.printf("%s: %s", item, st)
	}
	a.coord.NotifyChange()
	return nil
}

func (a *App) cmdCustom(ctx context.Context, args []string, op func(context.Context, domain.Category, string) error) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add|remove <category> <name>")
	}
	c, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	if err := op(ctx, c, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.coord.NotifyChange()
	return nil
}

func (a *App) cmdRole(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: role <dom|sub|switch|voyeur>")
	}
	if err := a.prefs.SetRole(ctx, domain.ParseRole(args[0])); err != nil {
		return err
	}
	a.coord.NotifyChange()
	return nil
}

func (a *App) cmdIntensity(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: intensity <casual|adventurous|weird|demon>")
	}
	if err := a.prefs.SetIntensity(ctx, domain.ParseIntensity(args[0])); err != nil {
		return err
	}
	a.coord.NotifyChange()
	return nil
}

// cmdGenerate produces a scene for the current session. Paired remote
// sessions delegate merging and generation to the server; everything else
// assembles the prompt locally and calls the completion endpoint.
func (a *App) cmdGenerate(ctx context.Context) error {
	var scene string
	if a.coord.State() == session.StateRemotePaired {
		res, err := a.coord.GenerateRemote(ctx)
		if err != nil {
			return err
		}
		scene = res.Scene
	} else {
		res, err := a.coord.AssemblePrompt()
		if err != nil {
			return err
		}
		text, err := a.api.Complete(ctx, res.Text, "", a.prefs.Params())
		if err != nil {
			return err
		}
		scene = text
	}

	a.lastScene = scene
	a.printf("%s", scene)
	a.printf("(use \"save [title]\" to keep this scene)")
	return nil
}

// cmdContinue extends the story from the last scene, or from the persisted
// continuity summary when starting a fresh session.
func (a *App) cmdContinue(ctx context.Context, args []string) error {
	base := a.lastScene
	if base == "" {
		base = a.prefs.Summary()
	}
	if base == "" {
		return fmt.Errorf("nothing to continue, generate a scene first")
	}

	p := "Previous scene:\n" + base + "\n\nContinue the scene."
	if instruction := strings.Join(args, " "); instruction != "" {
		p += " " + instruction
	}

	text, err := a.api.Complete(ctx, p, "", a.prefs.Params())
	if err != nil {
		return err
	}
	a.lastScene = text
	if err := a.prefs.SetSummary(ctx, tail(base+"\n\n"+text, 2000)); err != nil {
		return err
	}
	a.printf("%s", text)
	return nil
}

// tail returns the last n bytes of s, trimmed to a line boundary when one is
// close enough.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[len(s)-n:]
	if idx := strings.IndexByte(cut, '\n'); idx >= 0 && idx < n/4 {
		cut = cut[idx+1:]
	}
	return cut
}

func (a *App) cmdSave(ctx context.Context, args []string) error {
	if a.lastScene == "" {
		return fmt.Errorf("nothing to save, generate a scene first")
	}
	title := strings.Join(args, " ")
	if title == "" {
		title = "scene " + time.Now().Format("2006-01-02 15:04")
	}
	s := &domain.Scenario{Title: title, Content: a.lastScene, Intensity: a.prefs.Intensity()}
	if err := a.repos.Scenario.Save(ctx, s); err != nil {
		return err
	}
	a.printf("saved %s (%s)", s.ID, title)
	return nil
}

func (a *App) cmdList(ctx context.Context) error {
	scenarios, err := a.repos.Scenario.List(ctx)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		a.printf("archive is empty")
		return nil
	}
	for _, s := range scenarios {
		a.printf("%s  %s  [%s]  %s", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Intensity, s.Title)
	}
	return nil
}

// cmdTemplate manages the named template library and the active template.
func (a *App) cmdTemplate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: template list|save <name> <file>|use <id>|drop <id>|clear")
	}
	switch args[0] {
	case "list":
		templates, err := a.repos.Template.List(ctx)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			a.printf("template library is empty")
			return nil
		}
		for _, tpl := range templates {
			a.printf("%s  %s", tpl.ID, tpl.Name)
		}
		return nil
	case "save":
		if len(args) != 3 {
			return fmt.Errorf("usage: template save <name> <file>")
		}
		content, err := os.ReadFile(args[2]) //nolint:gosec // path comes from the user's command
		if err != nil {
			return fmt.Errorf("read %s: %w", args[2], err)
		}
		tpl := &domain.Template{Name: args[1], Content: string(content), Params: a.prefs.Params()}
		if err := a.repos.Template.Save(ctx, tpl); err != nil {
			return err
		}
		a.printf("saved template %s (%s)", tpl.ID, tpl.Name)
		return nil
	case "use":
		if len(args) != 2 {
			return fmt.Errorf("usage: template use <id>")
		}
		tpl, err := a.repos.Template.Get(ctx, args[1])
		if err != nil {
			return err
		}
		if err := a.prefs.SetTemplate(ctx, tpl.Content); err != nil {
			return err
		}
		if err := a.prefs.SetParams(ctx, tpl.Params); err != nil {
			return err
		}
		a.printf("template %s active", tpl.Name)
		return nil
	case "drop":
		if len(args) != 2 {
			return fmt.Errorf("usage: template drop <id>")
		}
		return a.repos.Template.Delete(ctx, args[1])
	case "clear":
		if err := a.prefs.SetTemplate(ctx, ""); err != nil {
			return err
		}
		a.printf("default template restored")
		return nil
	default:
		return fmt.Errorf("unknown template action %q", args[0])
	}
}

func (a *App) cmdTogether(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: together start|pass|handoff|done [name]")
	}
	switch args[0] {
	case "start":
		if err := a.coord.StartTogether(ctx); err != nil {
			return err
		}
		a.printf("selections cleared, first participant's turn, run \"together pass <name>\" when done")
		return nil
	case "pass":
		name := a.name
		if len(args) > 1 {
			name = args[1]
		}
		if err := a.coord.CompleteFirst(ctx, name); err != nil {
			return err
		}
		a.printf("first participant captured, hand the device over and run \"together handoff\"")
		return nil
	case "handoff":
		if err := a.coord.ConfirmHandoff(); err != nil {
			return err
		}
		a.printf("second participant's turn, make selections then run \"together done <name>\"")
		return nil
	case "done":
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		if err := a.coord.CompleteSecond(name); err != nil {
			return err
		}
		a.printf("both selections captured, run \"generate\"")
		return nil
	default:
		return fmt.Errorf("unknown together step %q", args[0])
	}
}

func (a *App) cmdRemote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: remote create|join [code]")
	}
	switch args[0] {
	case "create":
		code, err := a.coord.CreateRemote(ctx)
		if err != nil {
			return err
		}
		a.printf("room %s created, share the code with your partner", code)
		return nil
	case "join":
		if len(args) != 2 {
			return fmt.Errorf("usage: remote join <code>")
		}
		if err := a.coord.JoinRemote(ctx, args[1]); err != nil {
			return err
		}
		a.printf("joined room %s", a.coord.RoomCode())
		return nil
	default:
		return fmt.Errorf("unknown remote action %q", args[0])
	}
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: export <file>")
	}
	bundle, err := a.repos.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	a.printf("exported to %s", args[0])
	return nil
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file>")
	}
	data, err := os.ReadFile(args[0]) //nolint:gosec // path comes from the user's command
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	var bundle repository.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("parse bundle: %w", err)
	}
	if err := a.repos.Import(ctx, &bundle); err != nil {
		return err
	}
	// imported settings replace the in-memory state
	if err := a.prefs.Load(ctx); err != nil {
		return err
	}
	a.printf("imported from %s", args[0])
	return nil
}

func (a *App) cmdModels(ctx context.Context) error {
	models, err := a.api.Models(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		a.printf("  %s", m)
	}
	files, err := a.api.ModelFiles(ctx)
	if err != nil {
		return err
	}
	for _, f := range files {
		a.printf("  %s (local file)", f)
	}
	return nil
}

func (a *App) cmdSpeak(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		text = a.lastScene
	}
	if text == "" {
		return fmt.Errorf("nothing to speak")
	}
	audio, err := a.api.Synthesize(ctx, text, "")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("scene-%d.mp3", time.Now().Unix())
	if err := os.WriteFile(name, audio, 0o600); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	a.printf("wrote %s", name)
	return nil
}

func (a *App) cmdTranscribe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: transcribe <audio-file>")
	}
	f, err := os.Open(args[0]) //nolint:gosec // path comes from the user's command
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	text, err := a.api.Transcribe(ctx, f, args[0])
	if err != nil {
		return err
	}
	a.printf("%s", text)
	return nil
}

func (a *App) printShow() {
	a.printf("session: %s", a.coord.State())
	if code := a.coord.RoomCode(); code != "" {
		a.printf("room: %s", code)
	}
	a.printf("role: %s, intensity: %s", a.prefs.Role(), a.prefs.Intensity())
	if noGo := a.prefs.NoGoList(); len(noGo) > 0 {
		a.printf("no-go: %s", strings.Join(noGo, ", "))
	}

	for _, c := range domain.Categories() {
		a.printf("%s:", c)
		sel := a.prefs.Selection(c)
		for _, item := range a.prefs.Items(c) {
			if st, ok := sel[item]; ok {
				a.printf("  [%s] %s", st, item)
			} else {
				a.printf("  [ ] %s", item)
			}
		}
	}
}

func (a *App) printHelp() {
	a.printf(`commands:
  show                      current selections and session state
  cycle <category> <item>   advance an item through wants/okay/not
  add <category> <name>     add a custom item
  remove <category> <name>  remove a custom item
  role <r>                  set role (dom, sub, switch, voyeur)
  intensity <i>             set intensity (casual, adventurous, weird, demon)
  nogo [terms...]           set the hard exclusion list
  reset                     restore default selections
  prompt                    show the assembled prompt
  generate                  generate a scene for the current session
  continue [instruction]    extend the story from the last scene
  save [title]              archive the last generated scene
  list / delete <id>        browse or prune the archive
  template list|save|use|drop|clear    named prompt template library
  together start|pass|handoff|done [name]   same-device paired session
  remote create | remote join <code>   remote paired session
  cancel                    abandon the current paired session
  export <file> / import <file>        settings and archive backup
  models / load <file> <name>          generation model management
  speak [text] / transcribe <file>     audio services
  health                    server status
  quit`)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
