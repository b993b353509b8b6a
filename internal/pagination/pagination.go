// pagination — расчёт окна номеров страниц для отображения.
//
// Окно строится вокруг текущей страницы с радиусом delta: всегда видны
// первая и последняя страницы плюс диапазон [current-delta, current+delta];
// разрывы между видимыми номерами схлопываются в маркер многоточия.
package pagination

// Ellipsis — маркер пропуска в окне страниц.
const Ellipsis = -1

// DefaultDelta — радиус окна вокруг текущей страницы.
const DefaultDelta = 2

// Window — рассчитанное окно пагинации.
type Window struct {
	// Pages — номера страниц по порядку; на месте пропуска стоит Ellipsis.
	Pages []int
	// HasPrev/HasNext — доступность кнопок "назад"/"вперёд".
	HasPrev bool
	HasNext bool
}

// Build строит окно для текущей страницы current из total страниц.
// current за пределами [1, total] прижимается к границе; при total < 1
// возвращается пустое окно.
func Build(current, total, delta int) Window {
	if total < 1 {
		return Window{}
	}

	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	if delta < 0 {
		delta = 0
	}

	var pages []int
	last := 0

	for i := 1; i <= total; i++ {
		if i != 1 && i != total && (i < current-delta || i > current+delta) {
			continue
		}

		if last != 0 && i-last > 1 {
			pages = append(pages, Ellipsis)
		}

		pages = append(pages, i)
		last = i
	}

	return Window{
		Pages:   pages,
		HasPrev: current > 1,
		HasNext: current < total,
	}
}
