package redisx

import "time"

const (
	// Admin dashboard order list: cache:orders:admin -> JSON array.
	KeyAdminOrders = "cache:orders:admin"

	// Signup verification code: verify:{email} -> 6-digit code.
	KeyVerifyCode = "verify:%s"

	// Password reset token: reset:{token} -> user id.
	KeyResetToken = "reset:%s"

	// Dedup notification processing: dedup:{service}:{event_id}.
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLAdminOrders = 30 * time.Second
	TTLVerifyCode  = 15 * time.Minute
	TTLResetToken  = time.Hour
	TTLDedup       = 48 * time.Hour
)
