package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nlukyanov/consultant-booking/internal/domain"
)

// Client клиент для работы с сервисом уведомлений
// Все методы best-effort: вызывающая сторона логирует ошибку
// и продолжает работу, уведомления не влияют на судьбу записи
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingCreated уведомляет о созданной записи
func (c *Client) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, "/internal/events/booking-created", booking)
}

// BookingStatusChanged уведомляет о смене статуса записи
func (c *Client) BookingStatusChanged(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, "/internal/events/booking-status-changed", booking)
}

func (c *Client) send(ctx context.Context, path string, booking *domain.Booking) error {
	event := toEvent(booking)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("notifier: sent %s for booking id=%d", path, booking.ID)
	return nil
}

func toEvent(booking *domain.Booking) *BookingEvent {
	return &BookingEvent{
		BookingID:         booking.ID,
		CalendarID:        booking.CalendarID,
		Status:            string(booking.Status),
		BookingDate:       booking.BookingDate.Format(domain.DateFormat),
		StartTime:         booking.StartTime.String(),
		ServiceName:       booking.ServiceName,
		ClientName:        booking.ClientName,
		ClientPhone:       booking.ClientPhone,
		ClientEmail:       booking.ClientEmail,
		ClientTelegram:    booking.ClientTelegram,
		ConfirmationToken: booking.ConfirmationToken,
	}
}
