package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is empty")
	}

	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendAdminPin mails the plaintext login code with its expiry notice.
func (m *ResendMailer) SendAdminPin(ctx context.Context, toEmail, pin string, ttl time.Duration) error {
	minutes := int(ttl.Minutes())
	html := `
		<h1>Admin Login Verification</h1>
		<p>Your 4-digit verification PIN is:</p>
		<p style="font-size:32px;font-weight:bold;letter-spacing:8px;">` + pin + `</p>
		<p>This PIN will expire in ` + fmt.Sprintf("%d", minutes) + ` minutes.</p>
		<p>If you didn't request this PIN, please ignore this email.</p>
	`
	return m.send(ctx, toEmail, "Your Admin Login PIN", html)
}

// SendOrderConfirmation mails the buyer their order summary.
func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, toEmail string, order *model.Order, items []model.OrderItem) error {
	subject := "Order Confirmation - " + order.ID
	return m.send(ctx, toEmail, subject, orderHTML(order, items))
}

// SendAdminOrderAlert mails an admin about a new order.
func (m *ResendMailer) SendAdminOrderAlert(ctx context.Context, toEmail, customerEmail string, order *model.Order, items []model.OrderItem) error {
	subject := "New Order Received - " + order.ID
	html := `<h1>New Order Notification</h1>
		<p><strong>Customer Email:</strong> ` + customerEmail + `</p>` + orderHTML(order, items)
	return m.send(ctx, toEmail, subject, html)
}

func orderHTML(order *model.Order, items []model.OrderItem) string {
	var rows strings.Builder
	for _, it := range items {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td>%d</td><td>R%.2f</td><td>R%.2f</td></tr>`,
			it.Name, it.Quantity, it.Price, it.Price*float64(it.Quantity))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h1>PureBreed Pork - Order Confirmation</h1>
		<p>Order ID: <strong>%s</strong></p>
		<table>
			<thead><tr><th>Product</th><th>Quantity</th><th>Price</th><th>Subtotal</th></tr></thead>
			<tbody>%s</tbody>
		</table>
		<p><strong>Total: R%.2f</strong></p>`, order.ID, rows.String(), order.Total)
	if order.Phone != nil {
		fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s</p>`, *order.Phone)
	}
	if order.Address != nil {
		fmt.Fprintf(&b, `<p><strong>Address:</strong> %s</p>`, *order.Address)
	}
	b.WriteString(`<p>This is an automated notification from PureBreed Pork. Please do not reply to this email.</p>`)
	return b.String()
}

func (m *ResendMailer) send(ctx context.Context, toEmail, subject, html string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: subject,
		HTML:    html,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"resend rejected email: " + buf.String(),
		)
	}

	return nil
}
