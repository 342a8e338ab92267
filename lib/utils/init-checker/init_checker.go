package initchecker

import "fmt"

// CheckInit - проверка инициализации зависимостей хендлера при старте.
// Принимает пары (имя, значение); nil-значение означает ошибку wiring-а.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: нечётное число аргументов")
	}
	for n := 0; n < len(pairs); n += 2 {
		name, ok := pairs[n].(string)
		if !ok {
			panic("CheckInit: имя зависимости должно быть строкой")
		}
		if pairs[n+1] == nil {
			panic(fmt.Sprintf("зависимость %s не инициализирована", name))
		}
	}
}
