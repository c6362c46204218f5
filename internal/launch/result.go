package launch

// Result — исход операции адаптера: значение либо причина отказа.
// Причина — это сообщение, которое увидит пользователь.
type Result[T any] struct {
	value  T
	reason string
	ok     bool
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

func Err[T any](reason string) Result[T] {
	return Result[T]{reason: reason}
}

// ErrFrom переводит ошибку в отказ; пустое сообщение заменяется на fallback.
func ErrFrom[T any](err error, fallback string) Result[T] {
	if err == nil || err.Error() == "" {
		return Err[T](fallback)
	}
	return Err[T](err.Error())
}

func (r Result[T]) IsOk() bool { return r.ok }

// Unwrap возвращает значение и признак успеха.
func (r Result[T]) Unwrap() (T, bool) { return r.value, r.ok }

func (r Result[T]) Reason() string { return r.reason }
