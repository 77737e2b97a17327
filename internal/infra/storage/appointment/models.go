package appointment

import (
	"database/sql"
	"encoding/json"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// serviceLineRow элемент JSONB-колонки services
type serviceLineRow struct {
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName,omitempty"`
	StylistID       string  `json:"stylistId,omitempty"`
	StylistName     string  `json:"stylistName,omitempty"`
	DurationMinutes int     `json:"duration,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

// encodeAssignment раскладывает назначение на колонки stylist_id и services
func encodeAssignment(a domain.Assignment) (sql.NullString, []byte, error) {
	switch v := a.(type) {
	case domain.MultiAssignment:
		rows := make([]serviceLineRow, len(v.Services))
		for i, s := range v.Services {
			rows[i] = serviceLineRow{
				ServiceID:       s.ServiceID,
				ServiceName:     s.ServiceName,
				StylistID:       s.StylistID,
				StylistName:     s.StylistName,
				DurationMinutes: s.DurationMinutes,
				Price:           s.Price,
			}
		}
		raw, err := json.Marshal(rows)
		return sql.NullString{String: v.StylistID, Valid: v.StylistID != ""}, raw, err
	case domain.SingleAssignment:
		return sql.NullString{String: v.StylistID, Valid: v.StylistID != ""}, nil, nil
	default:
		return sql.NullString{}, nil, nil
	}
}

// decodeAssignment собирает назначение из колонок: непустой services означает MultiAssignment,
// stylist_id при этом сохраняется как мастер уровня записи
func decodeAssignment(stylistID sql.NullString, services []byte) (domain.Assignment, error) {
	if len(services) > 0 {
		var rows []serviceLineRow
		if err := json.Unmarshal(services, &rows); err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			lines := make([]domain.ServiceLine, len(rows))
			for i, r := range rows {
				lines[i] = domain.ServiceLine{
					ServiceID:       r.ServiceID,
					ServiceName:     r.ServiceName,
					StylistID:       r.StylistID,
					StylistName:     r.StylistName,
					DurationMinutes: r.DurationMinutes,
					Price:           r.Price,
				}
			}
			return domain.MultiAssignment{StylistID: stylistID.String, Services: lines}, nil
		}
	}
	return domain.SingleAssignment{StylistID: stylistID.String}, nil
}
