package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer покупатель, на которого оформляется заказ
type Customer struct {
	ID    int64  `json:"CustomerID"`
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// Product позиция каталога
type Product struct {
	ID        int64           `json:"ProductID"`
	Name      string          `json:"Name"`
	ImagePath string          `json:"ImagePath"`
	Price     decimal.Decimal `json:"Price"`
}

// DistributionHub склад, с которого исполняется заказ
type DistributionHub struct {
	ID      int64  `json:"DistributionHubID"`
	Name    string `json:"Name"`
	Address string `json:"Address"`
}

// OrderStatus состояние жизненного цикла заказа
type OrderStatus struct {
	ID   int64  `json:"OrderStatusID"`
	Name string `json:"Name"`
}

const (
	OrderStatusActive    int64 = 1
	OrderStatusDelivered int64 = 2
	OrderStatusCancelled int64 = 3
)

// OrderItem позиция в заказе. Name, ImagePath и Price копируются из каталога
// в момент создания и после этого не меняются.
type OrderItem struct {
	ProductID int64           `json:"ProductID"`
	Quantity  int64           `json:"Quantity"`
	Name      string          `json:"Name"`
	ImagePath string          `json:"ImagePath"`
	Price     decimal.Decimal `json:"Price"`
}

// Order сущность заказа
type Order struct {
	ID              int64           `json:"OrderID"`
	CustomerID      int64           `json:"CustomerID"`
	DistributionHub DistributionHub `json:"DistributionHub"`
	Status          OrderStatus     `json:"OrderStatus"`
	Total           decimal.Decimal `json:"Total"`
	Items           []OrderItem     `json:"OrderItems"`
	CreatedAt       time.Time       `json:"CreatedAt"`
}

// ItemsTotal сумма price*quantity по позициям
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// Денежные суммы хранятся как NUMERIC(12,2).
const (
	MoneyScale     = 2
	MoneyIntDigits = 10
)

var maxMoney = decimal.New(1, MoneyIntDigits)

// верхняя граница для хвостовых нулей вида "5.000…"
const maxFractionDigits = 32

// ValidTotal сообщает, что сумма положительна и помещается в NUMERIC(12,2)
// без округления. Показатель степени проверяется до сравнений: Cmp
// масштабирует коэффициент до общего показателя.
func ValidTotal(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	if exp := d.Exponent(); exp > MoneyIntDigits || exp < -maxFractionDigits {
		return false
	}
	return d.LessThan(maxMoney) && d.Equal(d.Truncate(MoneyScale))
}
