package dto

import (
	"errors"
	"strings"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the statically required login fields.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type CreateAccountRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Nominal         int64  `json:"nominal"`
}

func (r CreateAccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return errors.New("name and email are required")
	}
	if strings.TrimSpace(r.Password) == "" {
		return errors.New("password is required")
	}
	return nil
}

type UpdateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r UpdateAccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return errors.New("name and email are required")
	}
	return nil
}

type WithdrawRequest struct {
	Amount int64 `json:"nominalTarik"`
}

func (r WithdrawRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("nominalTarik must be a positive integer")
	}
	return nil
}

type DepositRequest struct {
	Amount int64 `json:"nominalSetor"`
}

func (r DepositRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("nominalSetor must be a positive integer")
	}
	return nil
}

type TransferRequest struct {
	ToID        int64  `json:"toId"`
	Amount      int64  `json:"nominalTransfer"`
	Description string `json:"description"`
}

func (r TransferRequest) Validate() error {
	if r.ToID <= 0 {
		return errors.New("toId is required")
	}
	if r.Amount <= 0 {
		return errors.New("nominalTransfer must be a positive integer")
	}
	return nil
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	if strings.TrimSpace(r.OldPassword) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("oldPassword and newPassword are required")
	}
	return nil
}
