package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// WhatsAppResponse is the gateway's envelope for all operations.
type WhatsAppResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	GroupID string `json:"group_id,omitempty"`
}

func whatsappClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.WhatsAppApiURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.WhatsAppApiKey)
}

func parseWhatsAppResponse(resp *resty.Response, err error, op string) (*WhatsAppResponse, error) {
	if err != nil {
		log.Printf("[WHATSAPP] %s request failed: %v", op, err)
		return nil, fmt.Errorf("whatsapp %s: %w", op, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Printf("[WHATSAPP] %s returned %d: %s", op, resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("whatsapp %s: gateway returned %d", op, resp.StatusCode())
	}

	var out WhatsAppResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("whatsapp %s: invalid gateway response: %w", op, err)
	}
	if !out.Success {
		return &out, fmt.Errorf("whatsapp %s: %s", op, out.Error)
	}
	return &out, nil
}

// SendWhatsAppMessage sends a single text message to one phone number.
func SendWhatsAppMessage(phone, message string) error {
	resp, err := whatsappClient().R().
		SetBody(map[string]string{"phone": phone, "message": message}).
		Post("/messages")
	_, err = parseWhatsAppResponse(resp, err, "send message")
	return err
}

// SendWhatsAppBroadcast dispatches one message to a list of numbers. The
// gateway handles fan-out; this is a single call, not a loop.
func SendWhatsAppBroadcast(phones []string, message string) error {
	resp, err := whatsappClient().R().
		SetBody(map[string]interface{}{"phones": phones, "message": message}).
		Post("/messages/broadcast")
	_, err = parseWhatsAppResponse(resp, err, "broadcast")
	return err
}

// CreateWhatsAppGroup creates a group (e.g. for a turma) and returns the
// gateway's group id.
func CreateWhatsAppGroup(name string, participants []string) (string, error) {
	resp, err := whatsappClient().R().
		SetBody(map[string]interface{}{"name": name, "participants": participants}).
		Post("/groups")
	out, err := parseWhatsAppResponse(resp, err, "create group")
	if err != nil {
		return "", err
	}
	return out.GroupID, nil
}

// RemoveWhatsAppParticipant removes one number from a group.
func RemoveWhatsAppParticipant(groupID, phone string) error {
	resp, err := whatsappClient().R().
		SetBody(map[string]string{"phone": phone}).
		Post("/groups/" + groupID + "/remove")
	_, err = parseWhatsAppResponse(resp, err, "remove participant")
	return err
}

// SendPasswordOverWhatsApp delivers a freshly generated password as a
// one-time message. The password is never persisted in plaintext; the
// reveal token flow is the only other way to see it.
func SendPasswordOverWhatsApp(phone, name, password string) error {
	message := fmt.Sprintf(
		"Olá %s! Sua senha de acesso é: %s\nPor segurança, altere-a no primeiro login.",
		name, password,
	)
	return SendWhatsAppMessage(phone, message)
}

// SendOTPOverWhatsApp delivers a login/verification code.
func SendOTPOverWhatsApp(phone, otp string) error {
	message := fmt.Sprintf("Seu código de verificação é: %s (válido por 10 minutos)", otp)
	return SendWhatsAppMessage(phone, message)
}
