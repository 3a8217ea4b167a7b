package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nanorand/nanorand"
)

// NewOrderNumberGenerator возвращает генератор номеров заказов вида BS-<snowflake>.
func NewOrderNumberGenerator(node int64) (func() string, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}
	return func() string { return "BS-" + n.Generate().String() }, nil
}

// newPaymentOrderID: идентификатор для шлюза: ORDER_<unix-millis>_<random>.
func newPaymentOrderID(now time.Time) (string, error) {
	suffix, err := nanorand.Gen(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORDER_%d_%s", now.UnixMilli(), strings.ToLower(suffix)), nil
}
