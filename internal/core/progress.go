package core

import "sync"

// ProgressCallback функция обратного вызова для обновления прогресса
type ProgressCallback func(current, total int, message string)

// ProgressUpdate информация об обновлении прогресса
type ProgressUpdate struct {
	Current int    // Текущий шаг
	Total   int    // Всего шагов
	Message string // Сообщение о текущей операции
}

// Percent возвращает прогресс в процентах (0-100)
func (u ProgressUpdate) Percent() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Current) * 100 / float64(u.Total)
}

// ProgressScale шкала прогресса полного прогона
const ProgressScale = 100

// progressNotifier хранит callback прогресса. Один писатель, один читатель.
type progressNotifier struct {
	mu       sync.Mutex
	callback ProgressCallback
}

// SetProgressCallback устанавливает функцию обратного вызова для прогресса
func (p *progressNotifier) SetProgressCallback(callback ProgressCallback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callback = callback
}

// notifyProgress уведомляет о прогрессе выполнения
func (p *progressNotifier) notifyProgress(current, total int, message string) {
	p.mu.Lock()
	callback := p.callback
	p.mu.Unlock()

	if callback != nil {
		callback(current, total, message)
	}
}

// currentCallback возвращает установленный callback
func (p *progressNotifier) currentCallback() ProgressCallback {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callback
}

// scaledProgress переводит локальный прогресс этапа (current из total)
// в диапазон [from, to] общей шкалы ProgressScale
func scaledProgress(callback ProgressCallback, from, to int) ProgressCallback {
	if callback == nil {
		return nil
	}
	return func(current, total int, message string) {
		value := from
		if total > 0 {
			value = from + (to-from)*current/total
		}
		if value > to {
			value = to
		}
		callback(value, ProgressScale, message)
	}
}
