package formlink

import (
	"context"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/event"
	"crm-admin/internal/infrastructure/monitoring"
	"crm-admin/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	linkNotFound = "Form link not found by repository"

	defaultCacheTTL = 10 * time.Minute
)

type Service interface {
	Issue(ctx context.Context, input IssueInput) (*FormLink, string, error)
	Resolve(ctx context.Context, token string) (*Resolution, error)
	Submit(ctx context.Context, token string, submission Submission) (*SubmitResult, error)
	Revoke(ctx context.Context, linkID int64) (*FormLink, error)
	List(ctx context.Context, filter ListFilter) (*Page, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
	URLFor(token string) string
}

type Settings struct {
	PublicBaseURL string
	DefaultTTL    time.Duration
	MaxTTL        time.Duration
	CacheTTL      time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (s Settings) withDefaults() Settings {
	s.PublicBaseURL = strings.TrimRight(s.PublicBaseURL, "/")
	if s.MaxTTL <= 0 || s.MaxTTL > MaxTTL {
		s.MaxTTL = MaxTTL
	}
	if s.DefaultTTL <= 0 || s.DefaultTTL > s.MaxTTL {
		s.DefaultTTL = min(DefaultTTL, s.MaxTTL)
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = defaultCacheTTL
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	return s
}

var _ Service = (*formLinkService)(nil)

type formLinkService struct {
	repo      Repository
	customers CustomerStore
	contacts  ContactStore
	dupes     DuplicateChecker
	tx        customer.Transactor
	cache     Cache
	pub       event.EventPublisher
	settings  Settings
	now       func() time.Time
	logger    *slog.Logger
}

// NewFormLinkService wires the form link use cases. cache, tx, dupes and pub may be nil.
func NewFormLinkService(
	repo Repository,
	customers CustomerStore,
	contacts ContactStore,
	dupes DuplicateChecker,
	tx customer.Transactor,
	cache Cache,
	pub event.EventPublisher,
	settings Settings,
	logger *slog.Logger,
) Service {
	if repo == nil {
		panic("form link repository cannot be nil")
	}
	if customers == nil || contacts == nil {
		panic("customer and contact stores cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewFormLinkService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	settings = settings.withDefaults()
	return &formLinkService{
		repo:      repo,
		customers: customers,
		contacts:  contacts,
		dupes:     dupes,
		tx:        tx,
		cache:     cache,
		pub:       pub,
		settings:  settings,
		now:       settings.Clock,
		logger:    logger.With(slog.String("component", "formLinkService")),
	}
}

func (s *formLinkService) URLFor(token string) string {
	return s.settings.PublicBaseURL + "/forms/" + token
}

func (s *formLinkService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTransaction(ctx, fn)
}

func (s *formLinkService) Issue(ctx context.Context, input IssueInput) (*FormLink, string, error) {
	input = input.Normalize()
	log := s.logger.With(slog.String("recipient", input.RecipientEmail))
	log.InfoContext(ctx, "Attempting to issue form link")

	if err := input.Validate(s.settings.MaxTTL); err != nil {
		log.WarnContext(ctx, "Validation failed for form link", slog.Any("error", err))
		return nil, "", err
	}
	ttl := input.TTL
	if ttl == 0 {
		ttl = s.settings.DefaultTTL
	}

	var customerName string
	if input.CustomerID != nil {
		c, err := s.customers.FindByID(ctx, *input.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.WarnContext(ctx, "Customer for form link not found", slog.Int64("customerID", *input.CustomerID))
				return nil, "", apperrors.ErrNotFound
			}
			return nil, "", fmt.Errorf("failed to check customer %d: %w", *input.CustomerID, err)
		}
		customerName = c.CompanyName
		if input.RecipientName == "" {
			input.RecipientName = c.CompanyName
		}
	}

	now := s.now()
	link := &FormLink{
		Token:          uuid.NewString(),
		CustomerID:     input.CustomerID,
		RecipientEmail: input.RecipientEmail,
		RecipientName:  input.RecipientName,
		Status:         StatusPending,
		ExpiresAt:      now.Add(ttl),
		CreatedBy:      input.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		log.ErrorContext(ctx, "Repository failed to save form link", slog.Any("error", err))
		return nil, "", fmt.Errorf("failed to save form link: %w", err)
	}
	monitoring.RecordFormLinkIssued()

	url := s.URLFor(link.Token)
	evt := event.FormLinkIssuedEvent{
		Timestamp:      now,
		LinkID:         link.ID,
		CustomerID:     link.CustomerID,
		CustomerName:   customerName,
		RecipientEmail: link.RecipientEmail,
		RecipientName:  link.RecipientName,
		URL:            url,
		ExpiresAt:      link.ExpiresAt,
	}
	if pubErr := s.pub.PublishFormLinkIssued(ctx, evt); pubErr != nil {
		log.ErrorContext(ctx, "Form link issued, but FAILED to publish event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Successfully issued form link", slog.Int64("linkID", link.ID), slog.Time("expiresAt", link.ExpiresAt))
	return link, url, nil
}

// lookup reads through the cache. Only usable links are cached.
func (s *formLinkService) lookup(ctx context.Context, token string) (*FormLink, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, token)
		if err != nil {
			s.logger.WarnContext(ctx, "Form link cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	link, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if now := s.now(); s.cache != nil && link.CheckUsable(now) == nil {
		ttl := min(link.ExpiresAt.Sub(now), s.settings.CacheTTL)
		if err := s.cache.Set(ctx, link, ttl); err != nil {
			s.logger.WarnContext(ctx, "Form link cache write failed", slog.Any("error", err))
		}
	}
	return link, nil
}

func (s *formLinkService) evict(ctx context.Context, token string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Evict(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "Form link cache eviction failed", slog.Any("error", err))
	}
}

func validToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

func (s *formLinkService) Resolve(ctx context.Context, token string) (*Resolution, error) {
	token = strings.TrimSpace(token)
	if !validToken(token) {
		s.logger.WarnContext(ctx, "Malformed form link token")
		return nil, apperrors.ErrNotFound
	}

	link, err := s.lookup(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, linkNotFound)
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error resolving form link", slog.Any("error", err))
		return nil, fmt.Errorf("failed to resolve form link: %w", err)
	}
	log := s.logger.With(slog.Int64("linkID", link.ID))

	if err := link.CheckUsable(s.now()); err != nil {
		log.InfoContext(ctx, "Form link is not usable", slog.String("status", string(link.Status)), slog.Any("error", err))
		return nil, err
	}

	res := &Resolution{Link: link}
	if link.CustomerID != nil {
		c, err := s.customers.FindByID(ctx, *link.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.WarnContext(ctx, "Customer behind form link no longer exists")
				return nil, ErrLinkUnavailable
			}
			return nil, fmt.Errorf("failed to load customer for form link: %w", err)
		}
		res.Customer = c
	}
	return res, nil
}

func (s *formLinkService) Submit(ctx context.Context, token string, submission Submission) (*SubmitResult, error) {
	token = strings.TrimSpace(token)
	if !validToken(token) {
		return nil, apperrors.ErrNotFound
	}

	submission = submission.Normalize()
	if err := submission.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for form submission", slog.Any("error", err))
		return nil, err
	}

	now := s.now()
	result := &SubmitResult{}
	err := s.withinTx(ctx, func(ctx context.Context) error {
		link, err := s.repo.FindByTokenForUpdate(ctx, token)
		if err != nil {
			return err
		}
		if err := link.CheckUsable(now); err != nil {
			return err
		}
		result.Link = link

		c, err := s.upsertCustomer(ctx, link, submission.Customer)
		if err != nil {
			return err
		}
		result.Customer = c
		result.NewCustomer = link.CustomerID == nil

		added, err := s.addContacts(ctx, c.ID, submission.Contacts)
		if err != nil {
			return err
		}
		result.ContactsAdded = added

		if err := s.repo.MarkSubmitted(ctx, link.ID, c.ID, now); err != nil {
			return err
		}
		link.Status = StatusSubmitted
		link.SubmittedAt = &now
		link.CustomerID = &c.ID
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.logger.WarnContext(ctx, linkNotFound)
			return nil, apperrors.ErrNotFound
		case errors.Is(err, apperrors.ErrGone):
			s.logger.InfoContext(ctx, "Submission to unusable form link rejected", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to store form submission", slog.Any("error", err))
		return nil, fmt.Errorf("failed to store form submission: %w", err)
	}

	log := s.logger.With(slog.Int64("linkID", result.Link.ID), slog.Int64("customerID", result.Customer.ID))
	s.evict(ctx, token)
	monitoring.RecordFormLinkSubmitted()
	if result.NewCustomer {
		monitoring.RecordCustomerCreated("form")
	}

	result.Duplicates = []customer.DuplicateMatch{}
	if result.NewCustomer && s.dupes != nil {
		matches, dupErr := s.dupes.CheckDuplicates(ctx, result.Customer.Probe(), result.Customer.ID)
		if dupErr != nil {
			log.ErrorContext(ctx, "Duplicate check after submission failed", slog.Any("error", dupErr))
		} else {
			result.Duplicates = matches
		}
	}

	evt := event.FormLinkSubmittedEvent{
		Timestamp:      now,
		LinkID:         result.Link.ID,
		CustomerID:     result.Customer.ID,
		CompanyName:    result.Customer.CompanyName,
		TaxID:          result.Customer.TaxID,
		RecipientEmail: result.Link.RecipientEmail,
		NewCustomer:    result.NewCustomer,
		ContactsAdded:  result.ContactsAdded,
		PossibleDupes:  len(result.Duplicates),
	}
	if pubErr := s.pub.PublishFormLinkSubmitted(ctx, evt); pubErr != nil {
		log.ErrorContext(ctx, "Form submitted, but FAILED to publish event", slog.Any("error", pubErr))
	}

	log.InfoContext(ctx, "Form submission stored",
		slog.Bool("newCustomer", result.NewCustomer),
		slog.Int("contactsAdded", result.ContactsAdded),
		slog.Int("possibleDuplicates", len(result.Duplicates)))
	return result, nil
}

func (s *formLinkService) upsertCustomer(ctx context.Context, link *FormLink, details customer.Details) (*customer.Customer, error) {
	if link.CustomerID == nil {
		c := customer.NewCustomer(details)
		if err := s.customers.Save(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	c, err := s.customers.FindByID(ctx, *link.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrLinkUnavailable
		}
		return nil, err
	}
	if c.Apply(details) {
		if err := s.customers.Save(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// addContacts inserts the submitted contacts. At most one of them ends up primary:
// the first one flagged, or the first one overall when the customer has none yet.
func (s *formLinkService) addContacts(ctx context.Context, customerID int64, contacts []contact.Details) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}
	existing, err := s.contacts.CountByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	primaryIdx := -1
	for i, d := range contacts {
		if d.IsPrimary {
			primaryIdx = i
			break
		}
	}
	if primaryIdx == -1 && existing == 0 {
		primaryIdx = 0
	}
	if primaryIdx >= 0 && existing > 0 {
		if err := s.contacts.ClearPrimary(ctx, customerID); err != nil {
			return 0, err
		}
	}

	for i, d := range contacts {
		d.IsPrimary = i == primaryIdx
		if err := s.contacts.Create(ctx, contact.NewContact(customerID, d)); err != nil {
			return i, err
		}
	}
	return len(contacts), nil
}

func (s *formLinkService) Revoke(ctx context.Context, linkID int64) (*FormLink, error) {
	log := s.logger.With(slog.Int64("linkID", linkID))
	log.InfoContext(ctx, "Attempting to revoke form link")

	link, err := s.repo.FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.WarnContext(ctx, linkNotFound)
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find form link %d: %w", linkID, err)
	}
	if link.Status != StatusPending {
		log.WarnContext(ctx, "Business rule failed: only pending links can be revoked", slog.String("status", string(link.Status)))
		return nil, ErrLinkUnavailable
	}

	if err := s.repo.UpdateStatus(ctx, linkID, StatusRevoked); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.WarnContext(ctx, "Form link changed state concurrently")
			return nil, ErrLinkUnavailable
		}
		log.ErrorContext(ctx, "Repository failed to revoke form link", slog.Any("error", err))
		return nil, fmt.Errorf("failed to revoke form link %d: %w", linkID, err)
	}
	s.evict(ctx, link.Token)

	link.Status = StatusRevoked
	link.UpdatedAt = s.now()
	log.InfoContext(ctx, "Successfully revoked form link")
	return link, nil
}

func (s *formLinkService) List(ctx context.Context, filter ListFilter) (*Page, error) {
	filter = filter.Sanitize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing form links", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list form links: %w", err)
	}
	return &Page{Items: items, Total: total}, nil
}

func (s *formLinkService) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.ExpirePending(ctx, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error expiring form links", slog.Any("error", err))
		return 0, fmt.Errorf("failed to expire form links: %w", err)
	}
	if n > 0 {
		monitoring.RecordFormLinksExpired(n)
		s.logger.InfoContext(ctx, "Expired pending form links", slog.Int64("count", n))
	}
	return n, nil
}
