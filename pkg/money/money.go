// Package money содержит арифметику денежных сумм в минимальных единицах валюты.
// Все суммы хранятся как int64 (пайсы/копейки), чтобы избежать ошибок округления float64.
package money

// MulRat умножает сумму на рациональный множитель num/den и округляет результат
// до минимальной единицы валюты по правилу round-half-up.
// Округление вниз недопустимо: систематическое занижение цены.
// den должен быть положительным, amount и num неотрицательными.
func MulRat(amount int64, num int64, den int64) int64 {
	if den <= 0 {
		den = 1
	}

	product := amount * num
	quotient := product / den
	remainder := product % den

	// round-half-up: остаток в половину знаменателя и больше округляется вверх
	if remainder*2 >= den {
		quotient++
	}

	return quotient
}

// Sum суммирует список сумм
func Sum(amounts []int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}
	return total
}
