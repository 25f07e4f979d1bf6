package domain

import (
	"fmt"
	"sort"
)

// QueueDescriptor es una entrada del catálogo de colas del cliente.
type QueueDescriptor struct {
	ID   int
	Name string
}

var queueNames = map[int]string{
	1090: "TFT Normal",
	1100: "TFT Ranked",
	1130: "TFT Hyper Roll",
	1160: "TFT Double Up",
	420:  "Ranked Solo/Duo",
	440:  "Ranked Flex",
	400:  "Draft Pick",
	430:  "Blind Pick",
	450:  "ARAM",
	1700: "Arena",
	1220: "Tocker's Trials",
}

// QueueName devuelve el nombre legible; nunca falla.
func QueueName(id int) string {
	if n, ok := queueNames[id]; ok {
		return n
	}
	return fmt.Sprintf("Unknown (ID: %d)", id)
}

// KnownQueue reports whether id is part of the catalog.
func KnownQueue(id int) bool {
	_, ok := queueNames[id]
	return ok
}

// Queues lista el catálogo ordenado por id.
func Queues() []QueueDescriptor {
	out := make([]QueueDescriptor, 0, len(queueNames))
	for id, n := range queueNames {
		out = append(out, QueueDescriptor{ID: id, Name: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
