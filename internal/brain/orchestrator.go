// Package brain coordinates the background recalibration pipeline: company
// discovery, qualification, contact scoring, event discovery, and daily
// mission synthesis. It is the only writer and reader of the reserved mission
// memory entity.
package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mariselli/hoofprint/internal/config"
	"github.com/mariselli/hoofprint/internal/crm"
	"github.com/mariselli/hoofprint/internal/decision"
	"github.com/mariselli/hoofprint/internal/llm"
	"github.com/mariselli/hoofprint/internal/memory"
	"github.com/mariselli/hoofprint/pkg/types"
)

const batchDateLayout = "2006-01-02"

// Fallback strings returned when the gateway is unreachable. The assistant
// surface never errors at the operator.
const (
	askFallback   = "I couldn't reach the assistant just now. Your data is unaffected; try again in a moment."
	draftFallback = "Drafting is unavailable right now. Reach out manually or retry shortly."
)

// Notifier receives pipeline progress messages. Telemetry is UI-local and
// advisory; the pipeline never blocks or fails on it.
type Notifier interface {
	Notify(message string)
}

// Brain runs the discovery pipeline and serves its precomputed results.
type Brain struct {
	gateway  llm.Gateway
	repo     *crm.Repository
	memory   *memory.Store
	targets  *config.Targets
	pipeline config.PipelineConfig
	notifier Notifier

	refreshing atomic.Bool
	now        func() time.Time
}

// New creates a Brain. notifier may be nil.
func New(gateway llm.Gateway, repo *crm.Repository, mem *memory.Store, targets *config.Targets, pipeline config.PipelineConfig, notifier Notifier) *Brain {
	return &Brain{
		gateway:  gateway,
		repo:     repo,
		memory:   mem,
		targets:  targets,
		pipeline: pipeline,
		notifier: notifier,
		now:      time.Now,
	}
}

// NewWithClock creates a Brain with an injected clock for tests.
func NewWithClock(gateway llm.Gateway, repo *crm.Repository, mem *memory.Store, targets *config.Targets, pipeline config.PipelineConfig, notifier Notifier, now func() time.Time) *Brain {
	b := New(gateway, repo, mem, targets, pipeline, notifier)
	b.now = now
	return b
}

// IsRefreshing reports whether a pipeline run is in flight. Advisory only;
// by the time the caller acts on it the answer may have changed.
func (b *Brain) IsRefreshing() bool {
	return b.refreshing.Load()
}

// Recalibrate starts a background pipeline run and returns immediately.
// The return value reports whether a run was started: a second request while
// one is in flight is dropped entirely, not queued. Callers read results
// later via DailyCommands and the repositories.
func (b *Brain) Recalibrate() bool {
	if !b.refreshing.CompareAndSwap(false, true) {
		log.Printf("Brain: recalibration already in flight, dropping request")
		return false
	}
	go b.run()
	return true
}

// RunOnce executes the pipeline synchronously. Used by the one-shot refresh
// command; the web path goes through Recalibrate.
func (b *Brain) RunOnce() bool {
	if !b.refreshing.CompareAndSwap(false, true) {
		return false
	}
	b.run()
	return true
}

// run executes the full pipeline. Any step error aborts the run and is
// logged once here; work persisted before the failure is kept.
func (b *Brain) run() {
	defer b.refreshing.Store(false)

	// The run outlives whatever request started it.
	ctx := context.Background()
	started := b.now()

	b.memory.Append(ctx, types.MemoryEntry{
		EntityID: types.SystemEntityPipeline,
		Type:     "status",
		Category: types.CategorySystem,
		Content:  "Recalibration started",
	})
	b.notify("Recalibration started")

	if err := b.runSteps(ctx); err != nil {
		// A failed run leaves no status entry; the missing completion
		// entry is the only durable marker.
		log.Printf("Brain: recalibration aborted: %v", err)
		b.notify("Recalibration failed")
		return
	}

	b.memory.Append(ctx, types.MemoryEntry{
		EntityID: types.SystemEntityPipeline,
		Type:     "status",
		Category: types.CategorySystem,
		Content:  fmt.Sprintf("Recalibration complete in %s", time.Since(started).Round(time.Second)),
	})
	b.notify("Recalibration complete")
}

func (b *Brain) runSteps(ctx context.Context) error {
	if err := b.discoverLeads(ctx); err != nil {
		return fmt.Errorf("lead discovery: %w", err)
	}
	if err := b.discoverEvents(ctx); err != nil {
		return fmt.Errorf("event discovery: %w", err)
	}
	if err := b.synthesizeMissions(ctx); err != nil {
		return fmt.Errorf("mission synthesis: %w", err)
	}
	return nil
}

// discoverLeads walks every configured (keyword, location) target, qualifies
// a bounded subset of the returned companies, discovers and scores their
// contacts, and persists the results as enriched leads.
func (b *Brain) discoverLeads(ctx context.Context) error {
	for _, target := range b.targets.Targets {
		b.notify(fmt.Sprintf("Searching %s in %s", target.Keyword, target.Location))

		companies, err := b.gateway.SearchCompanies(ctx, target.Keyword, target.Location)
		if err != nil {
			return err
		}
		if max := b.pipeline.MaxCompanies; max > 0 && len(companies) > max {
			companies = companies[:max]
		}

		for _, company := range companies {
			qualification, err := b.gateway.QualifyCompany(ctx, company)
			if err != nil {
				return err
			}
			candidates, err := b.gateway.DiscoverContacts(ctx, company)
			if err != nil {
				return err
			}

			for _, candidate := range candidates {
				if candidate.Role == types.RoleIrrelevant {
					continue
				}
				scoring, err := b.gateway.ScoreContact(ctx, candidate, company)
				if err != nil {
					return err
				}
				scoring.Overall = decision.CalculateLeadPriority(scoring)

				lead := &types.Lead{
					Name:        candidate.Name,
					Title:       candidate.Title,
					Role:        candidate.Role,
					CompanyName: company.Name,
					Email:       candidate.Email,
					LinkedIn:    candidate.LinkedIn,
					Categories:  qualification.Categories,
					Notes:       qualification.Summary,
					Status:      types.StatusEnriched,
					Scoring:     scoring,
					Source:      fmt.Sprintf("Discovery: %s / %s", target.Keyword, target.Location),
				}
				if err := b.repo.SaveLead(ctx, lead); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// discoverEvents picks one random (month, country) pair from the configured
// candidates and persists whatever the gateway finds.
func (b *Brain) discoverEvents(ctx context.Context) error {
	if len(b.targets.Months) == 0 || len(b.targets.Countries) == 0 {
		return nil
	}
	month := b.targets.Months[rand.Intn(len(b.targets.Months))]
	country := b.targets.Countries[rand.Intn(len(b.targets.Countries))]
	b.notify(fmt.Sprintf("Scanning events: %s, %s", month, country))

	events, err := b.gateway.DiscoverEvents(ctx, month, country, b.now().Year())
	if err != nil {
		return err
	}
	for i := range events {
		events[i].Month = month
		if err := b.repo.SaveEvent(ctx, &events[i]); err != nil {
			return err
		}
	}
	return nil
}

// synthesizeMissions builds today's ranked mission batch from the capped
// inbox and persists it as a single serialized memory entry against the
// reserved missions entity.
func (b *Brain) synthesizeMissions(ctx context.Context) error {
	inbox, err := b.repo.Inbox(ctx)
	if err != nil {
		return err
	}
	if max := b.pipeline.MaxInboxForBrief; max > 0 && len(inbox) > max {
		inbox = inbox[:max]
	}

	b.notify("Synthesizing missions")
	missions, err := b.gateway.SynthesizeMissions(ctx, renderPipelineBrief(inbox))
	if err != nil {
		return err
	}
	ranked := decision.RankMissions(missions)

	batch := types.MissionBatch{
		Date:     b.now().Format(batchDateLayout),
		Missions: ranked,
	}
	payload, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	b.memory.Append(ctx, types.MemoryEntry{
		EntityID: types.SystemEntityMissions,
		Type:     "missions",
		Category: types.CategorySystem,
		Content:  string(payload),
	})
	return nil
}

// renderPipelineBrief flattens the capped inbox into the textual context the
// mission synthesis prompt consumes, one line per lead.
func renderPipelineBrief(inbox []types.Lead) string {
	if len(inbox) == 0 {
		return "The discovery inbox is empty."
	}
	var brief strings.Builder
	for _, lead := range inbox {
		fmt.Fprintf(&brief, "- %s", lead.Name)
		if lead.Title != "" {
			fmt.Fprintf(&brief, ", %s", lead.Title)
		}
		fmt.Fprintf(&brief, " at %s (score %d)", lead.CompanyName, lead.Scoring.Overall)
		if lead.Notes != "" {
			fmt.Fprintf(&brief, ": %s", lead.Notes)
		}
		brief.WriteByte('\n')
	}
	return brief.String()
}

// DailyCommands returns today's cached mission batch. No batch for today, or
// an unparsable one, yields an empty list; a new calendar day invalidates
// yesterday's cache the same way.
func (b *Brain) DailyCommands(ctx context.Context) []types.Mission {
	entries, err := b.memory.ListRecent(ctx, memory.DefaultRecentLimit)
	if err != nil {
		log.Printf("Brain: failed to read mission cache: %v", err)
		return nil
	}

	today := b.now().Format(batchDateLayout)
	for _, entry := range entries {
		if entry.EntityID != types.SystemEntityMissions {
			continue
		}
		var batch types.MissionBatch
		if err := json.Unmarshal([]byte(entry.Content), &batch); err != nil {
			log.Printf("Brain: unparsable mission batch %s: %v", entry.ID, err)
			continue
		}
		if batch.Date == today {
			return batch.Missions
		}
	}
	return nil
}

// Ask answers a free-form operator prompt with recent pipeline activity
// injected as context. A gateway failure degrades to a fixed fallback
// answer, never an error.
func (b *Brain) Ask(ctx context.Context, prompt string) string {
	var identity strings.Builder
	if recent, err := b.memory.ListRecent(ctx, 20); err == nil {
		for _, entry := range recent {
			fmt.Fprintf(&identity, "- %s\n", entry.Content)
		}
	}

	answer, err := b.gateway.Chat(ctx, prompt, identity.String())
	if err != nil {
		log.Printf("Brain: chat failed: %v", err)
		return askFallback
	}
	return answer
}

// DraftOutreach writes a personalized outreach draft for a mission, using the
// matched contact's decayed memory context when one exists. Failures degrade
// to a fixed fallback string.
func (b *Brain) DraftOutreach(ctx context.Context, mission types.Mission) string {
	memoryContext := memory.ContextFresh
	first, last := types.SplitName(mission.ContactName)
	if contacts, err := b.repo.ListContacts(ctx); err == nil {
		for _, contact := range contacts {
			if contact.FirstName == first && contact.LastName == last && contact.CompanyName == mission.Company {
				if built, err := b.memory.BuildContext(ctx, contact.ID); err == nil {
					memoryContext = built
				}
				break
			}
		}
	}

	draft, err := b.gateway.DraftOutreach(ctx, mission, memoryContext)
	if err != nil {
		log.Printf("Brain: outreach draft failed: %v", err)
		return draftFallback
	}
	return draft
}

func (b *Brain) notify(message string) {
	if b.notifier != nil {
		b.notifier.Notify(message)
	}
}
