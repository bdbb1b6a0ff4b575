package designer

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultAutoSaveSchedule is the cron spec of the periodic snapshot.
const DefaultAutoSaveSchedule = "@every 30s"

// AutoSaver periodically writes the designer document to device storage under
// AutoSaveKey. Empty documents are skipped and failures are only logged.
type AutoSaver struct {
	designer *Designer
	kv       KV
	cron     *cron.Cron
	schedule string

	mu        sync.Mutex
	last      string
	scheduled bool
	running   bool
}

func NewAutoSaver(d *Designer, kv KV, schedule string) *AutoSaver {
	if schedule == "" {
		schedule = DefaultAutoSaveSchedule
	}
	return &AutoSaver{
		designer: d,
		kv:       kv,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (a *AutoSaver) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil
	}
	if !a.scheduled {
		if _, err := a.cron.AddFunc(a.schedule, func() {
			if _, err := a.SaveNow(context.Background()); err != nil {
				log.Printf("designer auto-save failed: %v", err)
			}
		}); err != nil {
			return err
		}
		a.scheduled = true
	}
	a.cron.Start()
	a.running = true
	return nil
}

// Stop halts the schedule and waits for a running save to finish.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	running := a.running
	a.running = false
	a.mu.Unlock()

	if running {
		<-a.cron.Stop().Done()
	}
}

// SaveNow snapshots the document and stores it. It reports false without error when
// there is nothing to save or the document did not change since the last save.
func (a *AutoSaver) SaveNow(ctx context.Context) (bool, error) {
	doc := a.designer.Document()
	if doc.IsEmpty() {
		return false, nil
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}

	a.mu.Lock()
	unchanged := a.last == string(b)
	a.mu.Unlock()
	if unchanged {
		return false, nil
	}

	if err := a.kv.Set(ctx, AutoSaveKey, string(b)); err != nil {
		return false, err
	}

	a.mu.Lock()
	a.last = string(b)
	a.mu.Unlock()
	return true, nil
}

// Restore loads the last auto-saved document, if any.
func Restore(ctx context.Context, kv KV) (Document, bool, error) {
	raw, ok, err := kv.Get(ctx, AutoSaveKey)
	if err != nil || !ok {
		return Document{}, false, err
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Document{}, false, err
	}
	return doc, true, nil
}
