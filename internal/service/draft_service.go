package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/debounce"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
	"ledgerbook/internal/wizard"
)

// DraftView is the client representation of a wizard draft.
type DraftView struct {
	ID           uuid.UUID                 `json:"id"`
	DocumentType string                    `json:"document_type"`
	Steps        []string                  `json:"steps"`
	Current      int                       `json:"current"`
	CurrentStep  string                    `json:"current_step"`
	Data         map[string]map[string]any `json:"data"`
	Computed     calc.Totals               `json:"computed"`
	Overridden   bool                      `json:"overridden"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// DraftConfig holds draft persistence settings.
type DraftConfig struct {
	SaveDebounce time.Duration
	TTL          time.Duration
}

// DraftService manages multi-step document drafts. Edits are applied in
// memory and persisted after a quiet period.
type DraftService interface {
	Create(ctx context.Context, businessID, userID uuid.UUID, docType domain.DocumentType) (*DraftView, error)
	Get(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error)
	UpdateStep(ctx context.Context, businessID, draftID uuid.UUID, step string, fields map[string]any) (*DraftView, error)
	Next(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error)
	Back(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error)
	Submit(ctx context.Context, businessID, userID, draftID uuid.UUID) (*DocumentResult, error)
	Delete(ctx context.Context, businessID, draftID uuid.UUID) error
	// Close writes pending drafts and stops background saves.
	Close()
}

type draftSession struct {
	draft   domain.Draft
	form    *wizard.Form
	version int
}

type draftService struct {
	store    port.DraftStore
	docSvc   DocumentService
	cfg      DraftConfig
	debounce *debounce.Debouncer
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*draftSession
}

// NewDraftService creates a new DraftService.
func NewDraftService(store port.DraftStore, docSvc DocumentService, cfg DraftConfig, log *zap.Logger) DraftService {
	return &draftService{
		store:    store,
		docSvc:   docSvc,
		cfg:      cfg,
		debounce: debounce.New(cfg.SaveDebounce),
		log:      log.Named("drafts"),
		sessions: make(map[string]*draftSession),
	}
}

func sessionKey(businessID, draftID uuid.UUID) string {
	return businessID.String() + ":" + draftID.String()
}

func (s *draftService) Create(ctx context.Context, businessID, userID uuid.UUID, docType domain.DocumentType) (*DraftView, error) {
	if !domain.ValidDocumentTypes[docType] {
		return nil, domain.ErrInvalidDocumentType
	}

	form := wizard.New(string(docType))
	sess := &draftSession{
		draft: domain.Draft{
			ID:         uuid.New(),
			BusinessID: businessID,
			UserID:     userID,
			State:      form.State(),
			UpdatedAt:  time.Now().UTC(),
		},
		form: form,
	}
	if err := s.store.Save(ctx, &sess.draft, s.cfg.TTL); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}

	s.mu.Lock()
	s.sessions[sessionKey(businessID, sess.draft.ID)] = sess
	view := sess.view()
	s.mu.Unlock()
	return view, nil
}

func (s *draftService) Get(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, businessID, draftID, nil)
}

func (s *draftService) UpdateStep(ctx context.Context, businessID, draftID uuid.UUID, step string, fields map[string]any) (*DraftView, error) {
	return s.mutate(ctx, businessID, draftID, func(f *wizard.Form) error {
		return f.UpdateStep(step, fields)
	})
}

func (s *draftService) Next(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, businessID, draftID, func(f *wizard.Form) error {
		f.GoNext()
		return nil
	})
}

func (s *draftService) Back(ctx context.Context, businessID, draftID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, businessID, draftID, func(f *wizard.Form) error {
		f.GoBack()
		return nil
	})
}

// Submit turns the draft into a document. Manually overridden summary totals
// are submitted as client totals and must agree with the recomputed ones.
func (s *draftService) Submit(ctx context.Context, businessID, userID, draftID uuid.UUID) (*DocumentResult, error) {
	key := sessionKey(businessID, draftID)
	sess, err := s.lockSession(ctx, businessID, draftID)
	if err != nil {
		return nil, err
	}
	input := submission(sess.form)
	s.mu.Unlock()
	input.BusinessID = businessID
	input.CreatedBy = userID

	result, err := s.docSvc.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.debounce.Cancel(key)
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	if err := s.store.Delete(ctx, businessID, draftID); err != nil && !errors.Is(err, domain.ErrDraftNotFound) {
		s.log.Warn("deleting submitted draft", zap.String("draft_id", draftID.String()), zap.Error(err))
	}
	return result, nil
}

func (s *draftService) Delete(ctx context.Context, businessID, draftID uuid.UUID) error {
	key := sessionKey(businessID, draftID)
	s.debounce.Cancel(key)
	s.mu.Lock()
	_, cached := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	err := s.store.Delete(ctx, businessID, draftID)
	if errors.Is(err, domain.ErrDraftNotFound) && cached {
		return nil
	}
	return err
}

func (s *draftService) Close() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	flushed := 0
	for _, k := range keys {
		if s.debounce.Flush(k) {
			flushed++
		}
	}
	s.debounce.Stop()
	s.log.Info("draft service stopped", zap.Int("flushed", flushed))
}

// mutate applies fn to the draft's form, schedules a save when fn is non-nil
// and returns the resulting view.
func (s *draftService) mutate(ctx context.Context, businessID, draftID uuid.UUID, fn func(*wizard.Form) error) (*DraftView, error) {
	sess, err := s.lockSession(ctx, businessID, draftID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if fn != nil {
		if err := fn(sess.form); err != nil {
			return nil, err
		}
		sess.version++
		sess.draft.UpdatedAt = time.Now().UTC()
		s.scheduleSave(sessionKey(businessID, draftID), sess)
	}
	return sess.view(), nil
}

// lockSession returns the cached session, loading it from the store on a
// miss. On success s.mu is held and the session is the one registered in
// s.sessions, so a save cannot evict it until the caller unlocks.
func (s *draftService) lockSession(ctx context.Context, businessID, draftID uuid.UUID) (*draftSession, error) {
	key := sessionKey(businessID, draftID)
	s.mu.Lock()
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	s.mu.Unlock()

	draft, err := s.store.Get(ctx, businessID, draftID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	sess := &draftSession{draft: *draft, form: wizard.Restore(draft.State)}
	s.sessions[key] = sess
	return sess, nil
}

// scheduleSave must be called with s.mu held.
func (s *draftService) scheduleSave(key string, sess *draftSession) {
	s.debounce.Trigger(key, func() {
		s.mu.Lock()
		version := sess.version
		draft := sess.draft
		draft.State = sess.form.State()
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Save(ctx, &draft, s.cfg.TTL); err != nil {
			s.log.Error("saving draft",
				zap.String("draft_id", draft.ID.String()),
				zap.Error(err),
			)
			return
		}

		// Drop the cached copy once it is persisted and unchanged.
		s.mu.Lock()
		if cur, ok := s.sessions[key]; ok && cur == sess && sess.version == version {
			delete(s.sessions, key)
		}
		s.mu.Unlock()
	})
}

func (sess *draftSession) view() *DraftView {
	f := sess.form
	return &DraftView{
		ID:           sess.draft.ID,
		DocumentType: f.DocumentType(),
		Steps:        f.Steps(),
		Current:      f.Current(),
		CurrentStep:  f.CurrentKey(),
		Data:         f.StepData(),
		Computed:     f.Computed().Rounded(),
		Overridden:   f.Overridden(),
		UpdatedAt:    sess.draft.UpdatedAt,
	}
}

// submission builds a document creation request from the form contents.
func submission(f *wizard.Form) *CreateDocumentInput {
	items, adj, summary := f.Snapshot()
	party := f.StepData()[wizard.StepParty]

	input := &CreateDocumentInput{
		DocumentType: domain.DocumentType(f.DocumentType()),
		DocumentInput: DocumentInput{
			Number:     stringField(party, "number"),
			PartyName:  stringField(party, "party_name"),
			PartyGSTIN: stringField(party, "party_gstin"),
			PartyPhone: stringField(party, "party_phone"),
			Notes:      stringField(party, "notes"),
			Items:      items,
			Shipping:   adj.Shipping,
			Discount:   adj.Discount,
		},
	}
	if d, err := time.Parse("2006-01-02", stringField(party, "document_date")); err == nil {
		input.DocumentDate = &d
	}
	if d, err := time.Parse("2006-01-02", stringField(party, "due_date")); err == nil {
		input.DueDate = &d
	}
	if f.Overridden() {
		input.Totals = &summary
	}
	return input
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
