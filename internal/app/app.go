package app

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vied-dev/vied/internal/config"
	"github.com/vied-dev/vied/internal/editor"
	"github.com/vied-dev/vied/internal/gitinfo"
	"github.com/vied-dev/vied/internal/logger"
	"github.com/vied-dev/vied/internal/session"
	"github.com/vied-dev/vied/internal/syntax"
	"github.com/vied-dev/vied/internal/vi"
)

// App is the top-level runtime for vied.
type App struct {
	args  []string
	debug bool
}

func New(args []string, debug bool) *App {
	return &App{args: args, debug: debug}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(a.debug); err != nil {
		return err
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	ed := editor.New(cfg)
	quit := false
	opts := []vi.Option{vi.WithUndoLimit(cfg.Vi.UndoLimit)}
	if !cfg.Vi.Enabled {
		opts = append(opts, vi.WithDisabled())
	}
	engine := vi.New(ed, vi.Hooks{
		OnSave: func() {
			if err := ed.Save(""); err != nil {
				logger.Error("save failed", "file", ed.Filename(), "err", err)
				ed.SetStatusMessage(err.Error())
				return
			}
			logger.Info("file written", "file", ed.Filename())
			ed.SetStatusMessage("written " + filepath.Base(ed.Filename()))
		},
		OnExit: func() {
			quit = true
		},
		OnQuitUnsaved: func() {
			if ed.Dirty() {
				ed.SetStatusMessage("unsaved changes (use :q!)")
				return
			}
			quit = true
		},
	}, opts...)
	ed.AttachEngine(engine)

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session manager unavailable", "err", err)
		sm = nil
	} else {
		defer sm.Stop()
	}

	var openPath string
	gitPath := ""
	if len(a.args) > 0 {
		openPath = a.args[0]
		if err := ed.OpenFile(openPath); err != nil {
			return err
		}
		gitPath = openPath
		if abs, err := filepath.Abs(openPath); err == nil {
			openPath = abs
		}
		if sm != nil {
			if state, ok := sm.GetFileState(openPath); ok {
				ed.SetCursor(state.Cursor)
				ed.SetScroll(state.Scroll)
			}
		}
	}
	if gitPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			gitPath = cwd
		}
	}
	ed.SetGitBranch(gitinfo.Branch(gitPath))

	var hl *syntax.Highlighter
	if openPath != "" && syntax.Supports(openPath) {
		hl, err = syntax.New()
		if err != nil {
			logger.Warn("highlighter unavailable", "err", err)
			hl = nil
		} else {
			hl.Parse(ed.Text())
		}
	}

	lastGitCheck := time.Now()
	lastChangeTick := ed.ChangeTick()
	lastHighlightStart := -1
	lastHighlightEnd := -1

	logger.Info("editor started", "file", openPath, "vi", cfg.Vi.Enabled)
	ed.Render(s)
	for {
		ev := s.PollEvent()
		mouse := false
		switch ev := ev.(type) {
		case *tcell.EventKey:
			ed.HandleKey(ev)
			if ed.ConsumeQuitRequest() {
				logger.Debug("quit requested", "key", "ctrl+q")
				quit = true
			}
			if quit {
				if sm != nil && openPath != "" {
					sm.SetFileState(openPath, session.FileState{
						Cursor: ed.Cursor(),
						Scroll: ed.Scroll(),
					})
				}
				return nil
			}
		case *tcell.EventMouse:
			ed.HandleMouse(ev)
			mouse = true
		case *tcell.EventResize:
			s.Sync()
		}
		if !mouse {
			ed.UpdateScroll()
		}
		if hl != nil {
			tick := ed.ChangeTick()
			changed := tick != lastChangeTick
			if changed {
				lastChangeTick = tick
				hl.Parse(ed.Text())
			}
			start, end := ed.VisibleRange()
			if changed || start != lastHighlightStart || end != lastHighlightEnd {
				spans := hl.Highlights(start, end)
				if spans != nil {
					editorSpans := make(map[int][]editor.HighlightSpan, len(spans))
					for line, lineSpans := range spans {
						dst := make([]editor.HighlightSpan, len(lineSpans))
						for i, span := range lineSpans {
							dst[i] = editor.HighlightSpan{
								StartCol: span.StartCol,
								EndCol:   span.EndCol,
								Kind:     span.Kind,
							}
						}
						editorSpans[line] = dst
					}
					ed.SetHighlights(start, end, editorSpans)
				} else {
					ed.SetHighlights(-1, -1, nil)
				}
				lastHighlightStart = start
				lastHighlightEnd = end
			}
		}
		if gitPath != "" && time.Since(lastGitCheck) > 2*time.Second {
			lastGitCheck = time.Now()
			ed.SetGitBranch(gitinfo.Branch(gitPath))
		}
		ed.Render(s)
	}
}
