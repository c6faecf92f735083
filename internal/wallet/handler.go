package wallet

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02 15:04"

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type holdingResponse struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type transactionResponse struct {
	Type    string  `json:"type"`
	Asset   string  `json:"asset"`
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
}

// Dashboard returns the wallet snapshot, current rates and total valuation.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)

	dash, err := h.service.Dashboard(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	assets := make(map[string]holdingResponse, len(dash.Holdings))
	for sym, holding := range dash.Holdings {
		assets[string(sym)] = holdingResponse{Name: holding.Name, Balance: holding.Balance}
	}

	txs := make([]transactionResponse, 0, len(dash.Transactions))
	for _, tx := range dash.Transactions {
		txs = append(txs, transactionResponse{
			Type:    tx.Type,
			Asset:   string(tx.Asset),
			Amount:  tx.Amount,
			Address: tx.Address,
			Date:    tx.CreatedAt.Format(dateLayout),
			Status:  tx.Status,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"assets":       assets,
		"transactions": txs,
		"rates":        dash.Rates,
		"total_value":  dash.TotalValue,
	})
}

type sendRequest struct {
	Asset   string  `json:"asset"`
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
}

// Send processes an outgoing transfer request. Rejected operations come back
// as a structured {success, message} body, never as an unhandled fault.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return rejected(c, "invalid request body")
	}
	uid, _ := c.Locals("user_id").(string)

	res, err := h.service.Send(c.UserContext(), uid, SendInput{
		Asset:   req.Asset,
		Amount:  req.Amount,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrUnknownAsset), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInsufficientBalance):
			return rejected(c, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": res.Message,
		"balance": res.Balance,
	})
}

type receiveRequest struct {
	Asset string `json:"asset"`
}

// Receive returns a deposit address for the requested asset.
func (h *Handler) Receive(c *fiber.Ctx) error {
	var req receiveRequest
	if err := c.BodyParser(&req); err != nil {
		return rejected(c, "invalid request body")
	}
	uid, _ := c.Locals("user_id").(string)

	address, err := h.service.Receive(c.UserContext(), uid, req.Asset)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrUnknownAsset):
			return rejected(c, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"address": address,
	})
}

func rejected(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
