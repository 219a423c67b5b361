package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deuxal/insurance-portal/internal/models"
)

const requestColumns = `r.id, r.user_id, r.request_type, r.category, r.description, r.status,
	r.admin_response, r.created_at, r.updated_at`

func scanRequest(row interface{ Scan(...any) error }, extra ...any) (*models.ClientRequest, error) {
	req := &models.ClientRequest{}
	var resp sql.NullString
	dest := append([]any{&req.ID, &req.UserID, &req.RequestType, &req.Category, &req.Description,
		&req.Status, &resp, &req.CreatedAt, &req.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	req.AdminResponse = nullString(resp)
	return req, nil
}

// CreateClientRequest вставляет заявку со статусом pending.
func (s *Storage) CreateClientRequest(ctx context.Context, req models.NewClientRequest) (*models.ClientRequest, error) {
	const op = "storage.CreateClientRequest"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	res, err := scanRequest(s.DB.QueryRowContext(ctx, `
		INSERT INTO client_requests AS r (user_id, request_type, category, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+requestColumns,
		req.UserID, req.RequestType, req.Category, req.Description))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return res, nil
}

// ListClientRequests возвращает заявки пользователя, новые первыми.
func (s *Storage) ListClientRequests(ctx context.Context, userID string) ([]models.ClientRequest, error) {
	const op = "storage.ListClientRequests"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM client_requests r
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.ClientRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllClientRequests возвращает все заявки вместе с профилем автора.
// Заявка без профиля возвращается с Profile == nil.
func (s *Storage) ListAllClientRequests(ctx context.Context) ([]models.ClientRequestWithProfile, error) {
	const op = "storage.ListAllClientRequests"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+requestColumns+`, p.id IS NOT NULL, COALESCE(p.first_name, ''), COALESCE(p.last_name, ''), p.phone
		FROM client_requests r
		LEFT JOIN profiles p ON p.id = r.user_id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.ClientRequestWithProfile{}
	for rows.Next() {
		var (
			hasProfile          bool
			firstName, lastName string
			phone               sql.NullString
		)
		req, err := scanRequest(rows, &hasProfile, &firstName, &lastName, &phone)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item := models.ClientRequestWithProfile{ClientRequest: *req}
		if hasProfile {
			item.Profile = &models.ProfileSummary{FirstName: firstName, LastName: lastName, Phone: nullString(phone)}
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RespondClientRequest записывает статус и ответ администратора.
func (s *Storage) RespondClientRequest(ctx context.Context, id string, resp models.ClientRequestResponse) (*models.ClientRequest, error) {
	const op = "storage.RespondClientRequest"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	res, err := scanRequest(s.DB.QueryRowContext(ctx, `
		UPDATE client_requests AS r
		SET status = $1, admin_response = $2, updated_at = now()
		WHERE r.id = $3
		RETURNING `+requestColumns,
		resp.Status, resp.AdminResponse, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return res, nil
}
