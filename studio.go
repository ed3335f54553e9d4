package gosocial

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Studio holds the state of one content-creation session: the settings,
// the current result with its edit states, and the feedback form.
type Studio struct {
	generator  Generator
	translator *LexicalTranslator
	history    *HistoryStore
	feedback   *FeedbackStore
	logger     logrus.FieldLogger
	clock      func() time.Time

	busy atomic.Bool

	mu          sync.Mutex
	language    Language
	tone        Tone
	current     *GenerationResult
	theme       string
	lastTheme   string
	generatedAt time.Time
	caption     fieldEditor
	hashtags    fieldEditor
	ideas       map[int]*fieldEditor
	form        FeedbackForm
}

// FeedbackForm is the pending, unsubmitted feedback.
type FeedbackForm struct {
	Rating  int
	Comment string
}

// StudioOption configures a Studio.
type StudioOption func(*Studio)

// WithLanguage sets the initial language (default IT).
func WithLanguage(lang Language) StudioOption {
	return func(s *Studio) {
		if lang.Valid() {
			s.language = lang
		}
	}
}

// WithTone sets the initial tone (default friendly).
func WithTone(tone Tone) StudioOption {
	return func(s *Studio) {
		if tone.Valid() {
			s.tone = tone
		}
	}
}

// WithTranslator replaces the default lexical translator.
func WithTranslator(t *LexicalTranslator) StudioOption {
	return func(s *Studio) {
		s.translator = t
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) StudioOption {
	return func(s *Studio) {
		s.logger = l
	}
}

// WithStudioClock sets the time source for export timestamps.
func WithStudioClock(clock func() time.Time) StudioOption {
	return func(s *Studio) {
		s.clock = clock
	}
}

// NewStudio creates a Studio. history and feedback may be nil, in which
// case nothing is persisted.
func NewStudio(gen Generator, history *HistoryStore, feedback *FeedbackStore, opts ...StudioOption) *Studio {
	s := &Studio{
		generator:  gen,
		translator: NewLexicalTranslator(),
		history:    history,
		feedback:   feedback,
		logger:     discardLogger(),
		clock:      time.Now,
		language:   LangIT,
		tone:       ToneFriendly,
		ideas:      make(map[int]*fieldEditor),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the current language and tone.
func (s *Studio) Settings() (Language, Tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language, s.tone
}

// SetLanguage changes the output language.
func (s *Studio) SetLanguage(lang Language) error {
	if !lang.Valid() {
		return &ValidationError{Field: "language", Message: "unsupported language " + string(lang)}
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	return nil
}

// SetTone changes the tone.
func (s *Studio) SetTone(tone Tone) error {
	if !tone.Valid() {
		return &ValidationError{Field: "tone", Message: "unsupported tone " + string(tone)}
	}
	s.mu.Lock()
	s.tone = tone
	s.mu.Unlock()
	return nil
}

// Busy reports whether a generation is in flight.
func (s *Studio) Busy() bool {
	return s.busy.Load()
}

// Current returns a copy of the current result, or nil.
func (s *Studio) Current() *GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := s.current.Clone()
	return &out
}

// Theme returns the theme the current result belongs to.
func (s *Studio) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// LastTheme returns the theme Regenerate would use.
func (s *Studio) LastTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTheme
}

// History returns the history store, which may be nil.
func (s *Studio) History() *HistoryStore {
	return s.history
}

// Submit generates content for theme.
func (s *Studio) Submit(ctx context.Context, theme string) (*GenerationResult, error) {
	lang, tone := s.Settings()
	if err := (GenerationRequest{Theme: theme, Language: lang, Tone: tone}).Validate(); err != nil {
		return nil, &UserError{Kind: KindValidation, Message: MessagesFor(lang).EmptyInputText, Cause: err}
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	return s.generate(ctx, theme, lang, tone)
}

// Regenerate repeats the last successful submit with the current settings.
func (s *Studio) Regenerate(ctx context.Context) (*GenerationResult, error) {
	lang, tone := s.Settings()
	theme := s.LastTheme()
	if theme == "" {
		return nil, &UserError{Kind: KindValidation, Message: MessagesFor(lang).NoPreviousTheme}
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	return s.generate(ctx, theme, lang, tone)
}

func (s *Studio) generate(ctx context.Context, theme string, lang Language, tone Tone) (*GenerationResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"theme":    theme,
		"language": lang,
		"tone":     tone,
	})

	res, tr, err := s.request(ctx, theme, lang, tone)
	if err != nil {
		log.WithError(err).Error("generation failed")
		return nil, &UserError{Kind: KindGeneration, Message: tr.ErrorText, Cause: err}
	}

	s.mu.Lock()
	s.setCurrentLocked(res, theme)
	s.lastTheme = theme
	s.mu.Unlock()

	if s.history != nil {
		if _, err := s.history.Record(theme, res, lang); err != nil {
			log.WithError(err).Warn("recording history failed")
		}
	}

	log.WithField("hashtags", len(res.Hashtags)).Debug("generation succeeded")
	out := res.Clone()
	return &out, nil
}

// request translates theme, calls the generator and validates the answer.
func (s *Studio) request(ctx context.Context, theme string, lang Language, tone Tone) (GenerationResult, Translation, error) {
	tr := s.translator.Translate(theme, lang)
	res, err := s.generator.Generate(ctx, PromptRequest{
		Theme:      tr.Text,
		Language:   lang.Code(),
		BasePrompt: tr.BasePrompt,
		Tone:       tone,
	})
	if err == nil {
		err = res.Validate()
	}
	if err != nil {
		return GenerationResult{}, tr, err
	}
	return res.Clone(), tr, nil
}

// Activate shows a past entry as the current result. History is untouched.
func (s *Studio) Activate(entry HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentLocked(entry.Results.Clone(), entry.Theme)
	s.lastTheme = entry.Theme
}

// ActivateID activates the history entry with the given ID.
func (s *Studio) ActivateID(id int64) (HistoryEntry, bool) {
	if s.history == nil {
		return HistoryEntry{}, false
	}
	entry, ok := s.history.Get(id)
	if ok {
		s.Activate(entry)
	}
	return entry, ok
}

// setCurrentLocked publishes res and resets every edit state.
func (s *Studio) setCurrentLocked(res GenerationResult, theme string) {
	s.current = &res
	s.theme = theme
	s.generatedAt = s.clock()
	s.caption.cancel()
	s.hashtags.cancel()
	s.ideas = make(map[int]*fieldEditor)
}

// Export formats the current result. The content carries the generation
// time and the file name is stamped with the time of the export.
func (s *Studio) Export(kind ExportKind) (name, content string, err error) {
	s.mu.Lock()
	cur, theme, at := s.current, s.theme, s.generatedAt
	s.mu.Unlock()

	if cur == nil {
		return "", "", ErrNoResult
	}
	content, err = Format(cur, theme, at, kind)
	if err != nil {
		return "", "", err
	}
	return FileName(s.clock(), kind), content, nil
}

// Share prepares the current result for platform.
func (s *Studio) Share(platform SharePlatform, pageURL string) (Share, error) {
	lang, _ := s.Settings()
	return PrepareShare(platform, s.Current(), lang, pageURL)
}

// CaptionState returns the caption's edit state.
func (s *Studio) CaptionState() FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caption.current()
}

// BeginCaptionEdit starts editing the caption with its current value.
func (s *Studio) BeginCaptionEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	s.caption.begin(s.current.Caption)
	return nil
}

// SetCaptionDraft replaces the caption draft.
func (s *Studio) SetCaptionDraft(draft string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caption.set(draft)
}

// CommitCaption writes the draft into the current result.
func (s *Studio) CommitCaption() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	draft, err := s.caption.commit()
	if err != nil {
		return err
	}
	next := s.current.WithCaption(draft)
	s.current = &next
	return nil
}

// CancelCaption drops the draft.
func (s *Studio) CancelCaption() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caption.cancel()
}

// IdeaState returns the edit state of post idea i.
func (s *Studio) IdeaState(i int) FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.ideas[i]; ok {
		return e.current()
	}
	return Viewing{}
}

// BeginIdeaEdit starts editing post idea i.
func (s *Studio) BeginIdeaEdit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	if i < 0 || i >= len(s.current.PostIdeas) {
		return ErrIndexOutOfRange
	}
	e := &fieldEditor{}
	e.begin(s.current.PostIdeas[i])
	s.ideas[i] = e
	return nil
}

// SetIdeaDraft replaces the draft of post idea i.
func (s *Studio) SetIdeaDraft(i int, draft string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.ideas[i]
	if !ok {
		return ErrNotEditing
	}
	return e.set(draft)
}

// CommitIdea writes the draft of post idea i into the current result.
func (s *Studio) CommitIdea(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	e, ok := s.ideas[i]
	if !ok {
		return ErrNotEditing
	}
	draft, err := e.commit()
	if err != nil {
		return err
	}
	next, err := s.current.WithPostIdea(i, draft)
	if err != nil {
		return err
	}
	s.current = &next
	delete(s.ideas, i)
	return nil
}

// CancelIdea drops the draft of post idea i.
func (s *Studio) CancelIdea(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ideas, i)
}

// HashtagState returns the hashtag set's edit state.
func (s *Studio) HashtagState() FieldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hashtags.current()
}

// BeginHashtagEdit starts editing the hashtags as one space-separated draft.
func (s *Studio) BeginHashtagEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	s.hashtags.begin(strings.Join(s.current.Hashtags, " "))
	return nil
}

// SetHashtagDraft replaces the hashtag draft.
func (s *Studio) SetHashtagDraft(draft string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hashtags.set(draft)
}

// CommitHashtags splits the draft on whitespace and replaces the hashtag set.
func (s *Studio) CommitHashtags() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoResult
	}
	draft, err := s.hashtags.commit()
	if err != nil {
		return err
	}
	next := s.current.WithHashtags(strings.Fields(draft))
	s.current = &next
	return nil
}

// CancelHashtags drops the draft.
func (s *Studio) CancelHashtags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashtags.cancel()
}

// FeedbackDraft returns the pending feedback form.
func (s *Studio) FeedbackDraft() FeedbackForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetFeedbackDraft updates the pending feedback form.
func (s *Studio) SetFeedbackDraft(rating int, comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = FeedbackForm{Rating: rating, Comment: comment}
}

// SubmitFeedback stores the pending form against the last theme and the
// current settings, then resets the form.
func (s *Studio) SubmitFeedback() (FeedbackEntry, error) {
	if s.feedback == nil {
		return FeedbackEntry{}, &StorageError{Op: "write", Key: FeedbackKey}
	}

	s.mu.Lock()
	form := s.form
	fc := FeedbackContext{Theme: s.lastTheme, Language: s.language, Tone: s.tone}
	s.mu.Unlock()

	entry, err := s.feedback.Submit(form.Rating, form.Comment, fc)
	if err != nil {
		return FeedbackEntry{}, err
	}

	s.mu.Lock()
	s.form = FeedbackForm{}
	s.mu.Unlock()
	return entry, nil
}
