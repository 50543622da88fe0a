package stockroom

import (
	"errors"
	"fmt"
	"testing"
)

// TestCacheBasicOperations tests the basic operations of the SimpleCache
func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
		// Indices follow registration order
		if index != i {
			t.Errorf("Index for item %s is %d, expected %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Fatalf("Item %s not found in cache", item)
		}
		if index != i {
			t.Errorf("Index for item %s is %d, expected %d", item, index, i)
		}
		if got := *cache.GetItem(index); got != item {
			t.Errorf("Item at index %d is %s, expected %s", index, got, item)
		}
		if got := *cache.GetItem32(uint32(index)); got != item {
			t.Errorf("Item at index %d is %s, expected %s", index, got, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("Found non-existent item in cache")
	}
}

// TestCacheCapacity tests the cache capacity limits
func TestCacheCapacity(t *testing.T) {
	const capacity = 5
	cache := FactoryNewCache[int](capacity)

	for i := 0; i < capacity; i++ {
		key := fmt.Sprintf("item%d", i)
		if _, err := cache.Register(key, i); err != nil {
			t.Errorf("Failed to register item %s: %v", key, err)
		}
	}

	_, err := cache.Register("overflow", 100)
	var capErr CacheCapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Expected CacheCapacityError when exceeding capacity, got %v", err)
	}
	if capErr.Capacity != capacity {
		t.Errorf("Capacity in error is %d, expected %d", capErr.Capacity, capacity)
	}
}

// TestCacheClear tests the cache clear functionality
func TestCacheClear(t *testing.T) {
	cache := FactoryNewCache[string](3).(*SimpleCache[string])

	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Cache holds %d items after clear", cache.Len())
	}
	for _, item := range items {
		if _, found := cache.GetIndex(item); found {
			t.Errorf("Item %s still found after cache clear", item)
		}
	}

	// Capacity is available again and indices restart
	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s after clear: %v", item, err)
		}
		if index != i {
			t.Errorf("Index after clear is %d, expected %d", index, i)
		}
	}
}

// TestCacheWithComplexTypes tests the cache with more complex data types
func TestCacheWithComplexTypes(t *testing.T) {
	cache := FactoryNewCache[Position](10)

	positions := []Position{
		{X: 1.0, Y: 2.0},
		{X: 3.0, Y: 4.0},
		{X: 5.0, Y: 6.0},
	}
	keys := []string{"pos1", "pos2", "pos3"}

	for i, pos := range positions {
		if _, err := cache.Register(keys[i], pos); err != nil {
			t.Errorf("Failed to register position %v: %v", pos, err)
		}
	}

	for i, key := range keys {
		index, found := cache.GetIndex(key)
		if !found {
			t.Errorf("Position with key %s not found", key)
			continue
		}
		pos := cache.GetItem(index)
		if *pos != positions[i] {
			t.Errorf("Position at index %d is %v, expected %v", index, *pos, positions[i])
		}
	}

	// Items are addressable in place
	cache.GetItem(0).X = 10
	if got := cache.GetItem(0).X; got != 10 {
		t.Errorf("In-place write lost, got %v", got)
	}
}
