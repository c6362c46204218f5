// internal/license/keygen.go
package license

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"

	"github.com/keygen-sh/keygen-go/v3"
	"go.uber.org/zap"
)

// KeygenValidator handles license validation using Keygen.sh
type KeygenValidator struct {
	logger    *zap.Logger
	accountID string
	productID string
}

// NewKeygenValidator creates a new Keygen license validator
func NewKeygenValidator(accountID, productToken, productID string, logger *zap.Logger) *KeygenValidator {
	keygen.Account = accountID
	keygen.Product = productID
	keygen.Token = productToken
	keygen.PublicKey = ""

	return &KeygenValidator{
		logger:    logger.Named("license"),
		accountID: accountID,
		productID: productID,
	}
}

// Validate проверяет ключ и при необходимости активирует текущую машину.
func (kv *KeygenValidator) Validate(ctx context.Context, licenseKey string) error {
	kv.logger.Info("Validating license", zap.String("key", maskKey(licenseKey)))

	fingerprint, err := generateFingerprint()
	if err != nil {
		return fmt.Errorf("failed to generate machine fingerprint: %w", err)
	}

	keygen.LicenseKey = licenseKey

	lic, err := keygen.Validate(ctx, fingerprint)
	switch {
	case errors.Is(err, keygen.ErrLicenseNotActivated):
		kv.logger.Info("License not activated, attempting activation")
		machine, activateErr := lic.Activate(ctx, fingerprint)
		if activateErr != nil {
			return fmt.Errorf("failed to activate license: %w", activateErr)
		}
		kv.logger.Info("License activated successfully",
			zap.String("machine_id", machine.ID),
			zap.String("fingerprint", fingerprint))

	case errors.Is(err, keygen.ErrLicenseExpired):
		return errors.New("license has expired")

	case err != nil:
		return fmt.Errorf("license validation failed: %w", err)
	}

	if lic == nil {
		return errors.New("license not found")
	}

	kv.logger.Info("License validation successful", zap.String("license_id", lic.ID))
	return nil
}

// Heartbeat повторно валидирует ключ, чтобы лицензия оставалась активной.
func (kv *KeygenValidator) Heartbeat(ctx context.Context, licenseKey string) error {
	keygen.LicenseKey = licenseKey

	fingerprint, err := generateFingerprint()
	if err != nil {
		return fmt.Errorf("failed to generate machine fingerprint: %w", err)
	}
	if _, err := keygen.Validate(ctx, fingerprint); err != nil {
		return fmt.Errorf("heartbeat failed: %w", err)
	}

	kv.logger.Debug("License heartbeat sent successfully")
	return nil
}

// generateFingerprint: hostname + первый MAC + OS.
func generateFingerprint() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var mac string
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0 && len(iface.HardwareAddr) > 0 {
			mac = iface.HardwareAddr.String()
			break
		}
	}
	if mac == "" {
		return "", errors.New("no network interfaces found")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	hash := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%s", hostname, mac, runtime.GOOS)))
	return fmt.Sprintf("%x", hash), nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}
