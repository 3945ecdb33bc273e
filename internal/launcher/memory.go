package launcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MemoryPlan представляет набор вычисленных флагов памяти для рантайма.
// План является чистой функцией от memoryMB и уже накопленных аргументов
// рантайма: если вызывающая сторона уже задала размер кучи или кеша,
// план пустой и не добавляет конфликтующих настроек.
type MemoryPlan struct {
	MinHeapMB       int
	MaxHeapMB       int
	PermSizeMB      int // 0 для современных рантаймов, где настройка устарела
	CodeCacheSizeMB int
}

const (
	minPermSizeMB = 256
	maxPermSizeMB = 1024

	// modernVersionThreshold мажорная версия, начиная с которой
	// perm-size настройка не передается рантайму
	modernVersionThreshold = 8
)

// heapMarkers префиксы аргументов рантайма, фиксирующих размер кучи или кеша
var heapMarkers = []string{
	"-Xms",
	"-Xmx",
	"-XX:MaxPermSize",
	"-XX:PermSize",
	"-XX:ReservedCodeCacheSize",
	"-XX:MaxMetaspaceSize",
}

// HasMemoryMarker сообщает, содержат ли аргументы рантайма настройку памяти
func HasMemoryMarker(runtimeArgs []string) bool {
	for _, arg := range runtimeArgs {
		for _, marker := range heapMarkers {
			if strings.HasPrefix(arg, marker) {
				return true
			}
		}
	}
	return false
}

// ComputeMemoryPlan вычисляет план памяти для заданного объема в мегабайтах.
// Возвращает пустой план, если аргументы рантайма уже содержат настройку
// памяти. Для современных рантаймов (мажорная версия больше 8) устаревшая
// perm-size настройка опускается.
func ComputeMemoryPlan(memoryMB int, runtimeArgs []string, modernRuntime bool) MemoryPlan {
	if HasMemoryMarker(runtimeArgs) {
		return MemoryPlan{}
	}

	permSize := memoryMB / 4
	if permSize < minPermSizeMB {
		permSize = minPermSizeMB
	}
	if permSize > maxPermSizeMB {
		permSize = maxPermSizeMB
	}

	plan := MemoryPlan{
		MinHeapMB:       memoryMB,
		MaxHeapMB:       memoryMB,
		CodeCacheSizeMB: permSize / 2,
	}
	if !modernRuntime {
		plan.PermSizeMB = permSize
	}

	return plan
}

// IsEmpty сообщает, пустой ли план
func (p MemoryPlan) IsEmpty() bool {
	return p == MemoryPlan{}
}

// Args возвращает флаги рантайма, соответствующие плану
func (p MemoryPlan) Args() []string {
	if p.IsEmpty() {
		return nil
	}

	args := []string{
		fmt.Sprintf("-Xms%dm", p.MinHeapMB),
		fmt.Sprintf("-Xmx%dm", p.MaxHeapMB),
	}
	if p.PermSizeMB > 0 {
		args = append(args, fmt.Sprintf("-XX:MaxPermSize=%dm", p.PermSizeMB))
	}
	args = append(args, fmt.Sprintf("-XX:ReservedCodeCacheSize=%dm", p.CodeCacheSizeMB))

	return args
}

// versionPattern извлекает строку версии из вывода `java -version`,
// например `openjdk version "17.0.1"` или `java version "1.8.0_292"`
var versionPattern = regexp.MustCompile(`version "([0-9]+)(?:\.([0-9]+))?[^"]*"`)

// ParseJavaMajorVersion извлекает мажорную версию рантайма из вывода
// `java -version`. Возвращает 0, если версию определить не удалось.
func ParseJavaMajorVersion(output string) int {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return 0
	}

	first, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	// Схема 1.x (Java 8 и старше): мажорная версия во втором компоненте
	if first == 1 && match[2] != "" {
		second, err := strconv.Atoi(match[2])
		if err != nil {
			return 0
		}
		return second
	}

	return first
}
