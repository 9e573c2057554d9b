package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"twofa-api/internal/store"
)

const otpKeyPrefix = "otp:"

type otpRecord struct {
	UserID int64  `json:"user_id"`
	OTP    string `json:"otp"`
}

// OTPStore guarda a lo sumo un OTP vigente por usuario sobre un KeyValueStore.
type OTPStore struct {
	kv store.KeyValueStore
}

func NewOTPStore(kv store.KeyValueStore) *OTPStore {
	return &OTPStore{kv: kv}
}

// Put guarda el codigo para el usuario, pisando cualquier OTP anterior.
func (s *OTPStore) Put(ctx context.Context, userID int64, code string, ttl time.Duration) error {
	payload, err := json.Marshal(otpRecord{UserID: userID, OTP: code})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, otpKey(userID), payload, ttl)
}

// Get devuelve el codigo vigente; found=false si expiro o nunca se emitio.
func (s *OTPStore) Get(ctx context.Context, userID int64) (string, bool, error) {
	payload, found, err := s.kv.Get(ctx, otpKey(userID))
	if err != nil || !found {
		return "", false, err
	}
	var record otpRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return "", false, err
	}
	return record.OTP, true, nil
}

// Delete invalida el OTP del usuario; borrar una clave ausente no es error.
func (s *OTPStore) Delete(ctx context.Context, userID int64) error {
	return s.kv.Delete(ctx, otpKey(userID))
}

func otpKey(userID int64) string {
	return fmt.Sprintf("%s%d", otpKeyPrefix, userID)
}
