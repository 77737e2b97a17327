package get_available_slots

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

// ExecuteTeam вычисляет слоты для записи с несколькими мастерами.
// Без мастеров - один запрос "любой мастер", с одним - обычный запрос,
// с несколькими - параллельные запросы по каждому и пересечение по точному времени слота.
// Если ни один слот не доступен и причины нет, добавляет сообщение о том, что услуги не помещаются в день.
func (uc *UseCase) ExecuteTeam(ctx context.Context, req *TeamRequest) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateTeamRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: team validation failed: %v", err)
		return nil, err
	}

	stylists := uniqueStylists(req.StylistIDs)

	// 2. Запросы по мастерам
	var (
		resp *Response
		err  error
	)
	switch len(stylists) {
	case 0:
		resp, err = uc.Execute(ctx, &Request{
			BranchID:               req.BranchID,
			Date:                   req.Date,
			ServiceDurationMinutes: req.ServiceDurationMinutes,
		})
	case 1:
		resp, err = uc.Execute(ctx, &Request{
			BranchID:               req.BranchID,
			StylistID:              ptr.Ptr(stylists[0]),
			Date:                   req.Date,
			ServiceDurationMinutes: req.ServiceDurationMinutes,
		})
	default:
		resp, err = uc.executeParallel(ctx, req, stylists)
	}
	if err != nil {
		return nil, err
	}

	// 3. Сообщение "не помещается", если нет ни одного доступного слота
	if resp.Message == nil && domain.CountAvailable(resp.Slots) == 0 {
		resp.Message = ptr.Ptr(fmt.Sprintf(msgDoesNotFitFormat, formatHours(normalizeDuration(req.ServiceDurationMinutes))))
	}

	return resp, nil
}

func (uc *UseCase) executeParallel(ctx context.Context, req *TeamRequest, stylists []string) (*Response, error) {
	results := make([]*Response, len(stylists))

	g, gctx := errgroup.WithContext(ctx)
	for i, stylistID := range stylists {
		g.Go(func() error {
			resp, err := uc.Execute(gctx, &Request{
				BranchID:               req.BranchID,
				StylistID:              ptr.Ptr(stylistID),
				Date:                   req.Date,
				ServiceDurationMinutes: req.ServiceDurationMinutes,
			})
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeResponses(results), nil
}

// mergeResponses пересекает ответы по мастерам.
// Первое сообщение-причина побеждает и очищает результат.
// Слот доступен, только если у каждого мастера доступен слот с тем же временем.
func mergeResponses(results []*Response) *Response {
	base := results[0]

	for _, r := range results {
		if r.Message != nil {
			return &Response{
				BranchID: base.BranchID,
				Date:     base.Date,
				Slots:    []domain.TimeSlot{},
				Message:  r.Message,
			}
		}
	}

	// по каждому мастеру: время слота -> слот
	indexed := make([]map[int64]domain.TimeSlot, len(results))
	for i, r := range results {
		indexed[i] = make(map[int64]domain.TimeSlot, len(r.Slots))
		for _, s := range r.Slots {
			indexed[i][slotKey(s.Time)] = s
		}
	}

	merged := make([]domain.TimeSlot, 0, len(base.Slots))
	for _, slot := range base.Slots {
		result := slot
		for i := 1; i < len(indexed) && result.Available; i++ {
			other, ok := indexed[i][slotKey(slot.Time)]
			switch {
			case !ok:
				result.Available = false
				result.Reason = domain.SlotReasonTeamBusy
			case !other.Available:
				result.Available = false
				result.Reason = other.Reason
			}
		}
		merged = append(merged, result)
	}

	return &Response{
		BranchID: base.BranchID,
		Date:     base.Date,
		Slots:    merged,
	}
}

func uniqueStylists(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// formatHours часы с точностью до десятой без лишнего нуля: 60 -> "1", 90 -> "1.5"
func formatHours(minutes int) string {
	hours := math.Round(float64(minutes)/60*10) / 10
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
