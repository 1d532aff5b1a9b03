package usecase

import (
	"context"
	"fmt"
	"time"

	"fleet-rental/internal/data/entity"
	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/rental"
	"fleet-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultSequenceCode keys the reference sequence, e.g. RENT-00042.
const defaultSequenceCode = "rent"

type BookingService interface {
	Create(ctx context.Context, companyID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Get(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	List(ctx context.Context, companyID uuid.UUID, state string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Update(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	Delete(ctx context.Context, bookingID string) error

	// Line editing, only while draft or planned
	ReplaceLines(ctx context.Context, bookingID string, req *request.ReplaceLinesRequest) (*response.BookingResponse, error)
	AddLine(ctx context.Context, bookingID string, req *request.AddLineRequest) (*response.BookingResponse, error)
	RemoveLine(ctx context.Context, bookingID, lineID string) (*response.BookingResponse, error)

	// Lifecycle transitions
	Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Reserve(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	MarkOngoing(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Finish(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Return(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Cancel(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

// PickingCreator is the hook for physical movement records. Implementations
// are best-effort: a failure is logged and never rolls back the booking
// transition that triggered it.
type PickingCreator interface {
	CreateOutbound(ctx context.Context, booking *entity.Booking) error
	CreateReturn(ctx context.Context, booking *entity.Booking) error
}

type bookingService struct {
	repo     *repository.Repository
	capacity CapacityService
	pickings PickingCreator
	locks    *productLocks
	seqCode  string
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, capacity CapacityService, pickings PickingCreator, sequenceCode string, log *zap.Logger) BookingService {
	if sequenceCode == "" {
		sequenceCode = defaultSequenceCode
	}
	return &bookingService{
		repo:     repo,
		capacity: capacity,
		pickings: pickings,
		locks:    newProductLocks(),
		seqCode:  sequenceCode,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, companyID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &rental.ValidationError{Fields: errs}
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		CompanyID:  companyID,
		ProjectRef: req.ProjectRef,
		State:      rental.StateDraft,
	}

	if req.SourceWarehouseID != "" {
		warehouseID, err := uuid.Parse(req.SourceWarehouseID)
		if err != nil {
			return nil, fmt.Errorf("invalid warehouse ID format %s: %w", req.SourceWarehouseID, err)
		}
		booking.SourceWarehouseID = &warehouseID
	}

	if err := s.applyDates(booking, req.DateStart, req.DateEnd); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(booking.ID, req.Lines)
	if err != nil {
		return nil, err
	}

	reference, err := s.repo.Sequence.Next(ctx, s.seqCode)
	if err != nil {
		s.log.Error("Failed to assign booking reference", zap.Error(err))
		return nil, fmt.Errorf("assign booking reference: %w", err)
	}
	booking.Reference = reference

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if len(lines) > 0 {
		if err := s.repo.BookingLine.CreateBatch(ctx, lines); err != nil {
			// Keep creation atomic: a booking without its lines is worse
			// than no booking.
			s.repo.Booking.Delete(ctx, booking.ID)
			return nil, fmt.Errorf("create booking lines: %w", err)
		}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.Int("line_count", len(lines)),
	)

	resp := response.BookingToResponse(booking, lines)
	return &resp, nil
}

func (s *bookingService) Get(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, lines)
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, companyID uuid.UUID, state string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByCompanyID(ctx, companyID, rental.BookingState(state), req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCompanyID(ctx, companyID, rental.BookingState(state))
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		lines, _ := s.repo.BookingLine.FindByBookingID(ctx, booking.ID)
		items[i] = response.BookingToResponse(booking, lines)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) Update(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &rental.ValidationError{Fields: errs}
	}

	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !rental.LinesEditable(booking.State) {
		return nil, &rental.InvalidTransitionError{From: booking.State, Action: "update"}
	}

	if req.ProjectRef != "" {
		booking.ProjectRef = req.ProjectRef
	}
	if req.SourceWarehouseID != "" {
		warehouseID, err := uuid.Parse(req.SourceWarehouseID)
		if err != nil {
			return nil, fmt.Errorf("invalid warehouse ID format %s: %w", req.SourceWarehouseID, err)
		}
		booking.SourceWarehouseID = &warehouseID
	}
	if err := s.applyDates(booking, req.DateStart, req.DateEnd); err != nil {
		return nil, err
	}

	booking.UpdatedAt = time.Now()
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	resp := response.BookingToResponse(booking, lines)
	return &resp, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID string) error {
	booking, _, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.State != rental.StateDraft {
		return &rental.InvalidTransitionError{From: booking.State, Action: "delete"}
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	return nil
}

// ==================== LINE EDITING ====================

func (s *bookingService) ReplaceLines(ctx context.Context, bookingID string, req *request.ReplaceLinesRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &rental.ValidationError{Fields: errs}
	}

	booking, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !rental.LinesEditable(booking.State) {
		return nil, &rental.InvalidTransitionError{From: booking.State, Action: "edit_lines"}
	}

	lines, err := s.buildLines(booking.ID, req.Lines)
	if err != nil {
		return nil, err
	}

	if err := s.repo.BookingLine.DeleteByBookingID(ctx, booking.ID); err != nil {
		return nil, fmt.Errorf("replace booking lines: %w", err)
	}
	if err := s.repo.BookingLine.CreateBatch(ctx, lines); err != nil {
		return nil, fmt.Errorf("replace booking lines: %w", err)
	}

	s.log.Info("Booking lines replaced",
		zap.String("booking_id", booking.ID.String()),
		zap.Int("line_count", len(lines)),
	)

	resp := response.BookingToResponse(booking, lines)
	return &resp, nil
}

func (s *bookingService) AddLine(ctx context.Context, bookingID string, req *request.AddLineRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &rental.ValidationError{Fields: errs}
	}

	booking, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !rental.LinesEditable(booking.State) {
		return nil, &rental.InvalidTransitionError{From: booking.State, Action: "edit_lines"}
	}

	lines, err := s.buildLines(booking.ID, []request.BookingLineRequest{req.BookingLineRequest})
	if err != nil {
		return nil, err
	}

	if err := s.repo.BookingLine.CreateBatch(ctx, lines); err != nil {
		return nil, fmt.Errorf("add booking line: %w", err)
	}

	all, err := s.repo.BookingLine.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("reload booking lines: %w", err)
	}

	resp := response.BookingToResponse(booking, all)
	return &resp, nil
}

func (s *bookingService) RemoveLine(ctx context.Context, bookingID, lineID string) (*response.BookingResponse, error) {
	booking, _, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !rental.LinesEditable(booking.State) {
		return nil, &rental.InvalidTransitionError{From: booking.State, Action: "edit_lines"}
	}

	id, err := uuid.Parse(lineID)
	if err != nil {
		return nil, fmt.Errorf("invalid line ID format %s: %w", lineID, err)
	}

	if err := s.repo.BookingLine.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("remove booking line: %w", err)
	}

	all, err := s.repo.BookingLine.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("reload booking lines: %w", err)
	}

	resp := response.BookingToResponse(booking, all)
	return &resp, nil
}

// ==================== LIFECYCLE TRANSITIONS ====================

// Confirm moves draft -> planned after field validation. planned is a soft
// hold; no capacity check happens here.
func (s *bookingService) Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := rental.Next(booking.State, rental.ActionConfirm)
	if err != nil {
		return nil, err
	}

	if err := validateConfirmable(booking, lines); err != nil {
		return nil, err
	}

	return s.transition(ctx, booking, lines, next, rental.ActionConfirm)
}

// Reserve moves planned -> reserved. This is the hard lock: every line runs
// the overlap check against resolved fleet capacity, all-or-nothing across
// the booking.
func (s *bookingService) Reserve(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := rental.Next(booking.State, rental.ActionReserve)
	if err != nil {
		return nil, err
	}

	// Serialize check-then-commit per product so two concurrent reserves
	// cannot both pass the check and jointly exceed capacity.
	productIDs := distinctProducts(lines)
	unlock := s.locks.acquire(productIDs)
	defer unlock()

	if err := s.checkAvailability(ctx, booking, lines); err != nil {
		return nil, err
	}

	resp, err := s.transition(ctx, booking, lines, next, rental.ActionReserve)
	if err != nil {
		return nil, err
	}

	// Best-effort side channel: a failed picking never reverts the reserve.
	if err := s.pickings.CreateOutbound(ctx, booking); err != nil {
		s.log.Error("Failed to create outbound picking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return resp, nil
}

func (s *bookingService) MarkOngoing(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.simpleTransition(ctx, bookingID, rental.ActionMarkOngoing)
}

func (s *bookingService) Finish(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.simpleTransition(ctx, bookingID, rental.ActionFinish)
}

// Return moves finished -> returned and releases the lines' demand. The
// return picking is best-effort like the outbound one.
func (s *bookingService) Return(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := rental.Next(booking.State, rental.ActionReturn)
	if err != nil {
		return nil, err
	}

	resp, err := s.transition(ctx, booking, lines, next, rental.ActionReturn)
	if err != nil {
		return nil, err
	}

	if err := s.pickings.CreateReturn(ctx, booking); err != nil {
		s.log.Error("Failed to create return picking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return resp, nil
}

// Cancel is legal from any pre-terminal state and immediately removes the
// booking's lines from overlap accounting.
func (s *bookingService) Cancel(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.simpleTransition(ctx, bookingID, rental.ActionCancel)
}

// ==================== AVAILABILITY CHECK ====================

// checkAvailability runs the overlap check for every line of the booking.
// Demand is grouped by product first so sibling lines on the same product
// are counted together; otherwise two half-capacity lines could slip past
// capacity jointly.
func (s *bookingService) checkAvailability(ctx context.Context, booking *entity.Booking, lines []*entity.BookingLine) error {
	requested := make(map[uuid.UUID]decimal.Decimal)
	for _, line := range lines {
		requested[line.ProductID] = requested[line.ProductID].Add(line.Quantity)
	}

	for _, productID := range distinctProducts(lines) {
		capacity, err := s.capacity.Resolve(ctx, productID, booking.CompanyID)
		if err != nil {
			return err
		}

		if !capacity.IsPositive() {
			return &rental.NoCapacityConfiguredError{ProductID: productID}
		}

		committed, err := s.repo.BookingLine.SumOverlapping(ctx, repository.OverlapQuery{
			ProductID:        productID,
			CompanyID:        booking.CompanyID,
			DateStart:        *booking.DateStart,
			DateEnd:          *booking.DateEnd,
			States:           rental.CapacityReducingStates,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			return err
		}

		want := requested[productID]
		if committed.Add(want).GreaterThan(capacity) {
			s.log.Warn("Reserve rejected: not enough availability",
				zap.String("booking_id", booking.ID.String()),
				zap.String("product_id", productID.String()),
				zap.String("capacity", capacity.String()),
				zap.String("committed", committed.String()),
				zap.String("requested", want.String()),
			)
			return &rental.InsufficientAvailabilityError{
				ProductID: productID,
				Capacity:  capacity,
				Committed: committed,
				Requested: want,
			}
		}
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) load(ctx context.Context, bookingID string) (*entity.Booking, []*entity.BookingLine, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, nil, rental.ErrNotFound
	}

	lines, err := s.repo.BookingLine.FindByBookingID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking lines: %w", err)
	}

	return booking, lines, nil
}

func (s *bookingService) simpleTransition(ctx context.Context, bookingID, action string) (*response.BookingResponse, error) {
	booking, lines, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := rental.Next(booking.State, action)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, booking, lines, next, action)
}

func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, lines []*entity.BookingLine, next rental.BookingState, action string) (*response.BookingResponse, error) {
	if err := s.repo.Booking.UpdateState(ctx, booking.ID, next); err != nil {
		return nil, fmt.Errorf("%s booking %s: %w", action, booking.ID.String(), err)
	}

	s.log.Info("Booking state changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("action", action),
		zap.String("from", string(booking.State)),
		zap.String("to", string(next)),
	)

	booking.State = next
	booking.UpdatedAt = time.Now()

	resp := response.BookingToResponse(booking, lines)
	return &resp, nil
}

func (s *bookingService) applyDates(booking *entity.Booking, start, end string) error {
	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return &rental.ValidationError{Fields: map[string]string{"date_start": "Invalid date format"}}
		}
		booking.DateStart = &t
	}
	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return &rental.ValidationError{Fields: map[string]string{"date_end": "Invalid date format"}}
		}
		booking.DateEnd = &t
	}
	if booking.DateStart != nil && booking.DateEnd != nil && booking.DateEnd.Before(*booking.DateStart) {
		return &rental.ValidationError{Fields: map[string]string{"date_end": "End date must not be before start date"}}
	}
	return nil
}

func (s *bookingService) buildLines(bookingID uuid.UUID, reqs []request.BookingLineRequest) ([]*entity.BookingLine, error) {
	lines := make([]*entity.BookingLine, 0, len(reqs))
	for i, lr := range reqs {
		productID, err := uuid.Parse(lr.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product ID format %s: %w", lr.ProductID, err)
		}
		if !lr.Quantity.IsPositive() {
			return nil, &rental.ValidationError{Fields: map[string]string{
				fmt.Sprintf("lines[%d].quantity", i): "Quantity must be positive",
			}}
		}
		lines = append(lines, &entity.BookingLine{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			BookingID: bookingID,
			ProductID: productID,
			Quantity:  lr.Quantity,
		})
	}
	return lines, nil
}

// validateConfirmable gathers every missing precondition so the caller sees
// them all at once.
func validateConfirmable(booking *entity.Booking, lines []*entity.BookingLine) error {
	fields := make(map[string]string)

	if booking.DateStart == nil {
		fields["date_start"] = "This field is required"
	}
	if booking.DateEnd == nil {
		fields["date_end"] = "This field is required"
	}
	if booking.DateStart != nil && booking.DateEnd != nil && booking.DateEnd.Before(*booking.DateStart) {
		fields["date_end"] = "End date must not be before start date"
	}
	if booking.ProjectRef == "" {
		fields["project_ref"] = "This field is required"
	}
	if len(lines) == 0 {
		fields["lines"] = "At least one line is required"
	}
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			fields[fmt.Sprintf("lines[%d].product_id", i)] = "This field is required"
		}
		if !line.Quantity.IsPositive() {
			fields[fmt.Sprintf("lines[%d].quantity", i)] = "Quantity must be positive"
		}
	}

	if len(fields) > 0 {
		return &rental.ValidationError{Fields: fields}
	}
	return nil
}

func distinctProducts(lines []*entity.BookingLine) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	return ids
}
