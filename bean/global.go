package bean

import "sync"

var (
	defaultUtils = NewUtils()
	defaultMutex sync.RWMutex
)

func Default() *Utils {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultUtils
}

// SetDefault replaces the package level Utils and returns the previous one.
func SetDefault(u *Utils) *Utils {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	old := defaultUtils
	defaultUtils = u
	return old
}

func GetProperty(bean any, name string) (string, error) {
	return Default().GetProperty(bean, name)
}

func GetArrayProperty(bean any, name string) ([]string, error) {
	return Default().GetArrayProperty(bean, name)
}

func SetProperty(bean any, name string, value any) error {
	return Default().SetProperty(bean, name, value)
}

func CopyProperty(bean any, name string, value any) error {
	return Default().CopyProperty(bean, name, value)
}

func CopyProperties(dest, orig any) error {
	return Default().CopyProperties(dest, orig)
}

func Populate(bean any, values map[string]any) error {
	return Default().Populate(bean, values)
}

func Describe(bean any) (map[string]string, error) {
	return Default().Describe(bean)
}

func CloneBean(bean any) (any, error) {
	return Default().CloneBean(bean)
}

func Decode(input any, output any) error {
	return Default().Decode(input, output)
}
