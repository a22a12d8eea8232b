// Package scoring: учёт репостов: постановка постов на учёт, приём реакций
// и перевод очков между реактором и автором.
//
// engine.go содержит чистую арифметику перевода. Масштабирование асимметричное:
// каждый получает изменение, умноженное на вес ДРУГОЙ стороны.
package scoring

// Базовая «стоимость» одного репоста до умножения на вес.
const (
	reactorGain = 1.0
	ownerLoss   = -1.0
)

// Transfer: изменения очков от одной засчитанной реакции.
type Transfer struct {
	ReactorDelta float64 // Реактору: +1 × вес автора
	OwnerDelta   float64 // Автору: −1 × вес реактора
}

// ComputeTransfer считает перевод очков за одну новую реакцию.
// Нижней и верхней границы у очков нет, баланс может уйти в минус.
func ComputeTransfer(reactorWeight, ownerWeight float64) Transfer {
	return Transfer{
		ReactorDelta: reactorGain * ownerWeight,
		OwnerDelta:   ownerLoss * reactorWeight,
	}
}
