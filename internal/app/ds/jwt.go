package ds

import (
	"github.com/golang-jwt/jwt"
)

// QuoteClaims — подписанная ссылка на снапшот расчета в Redis
type QuoteClaims struct {
	jwt.StandardClaims
	QuoteID string `json:"quote_id"`
}
