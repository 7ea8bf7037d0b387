package service

import (
	"maps"

	"github.com/MKhiriev/go-sync-engine/models"
)

// foldState is the net effect of a chain of operations on one entity.
type foldState int

const (
	foldNone foldState = iota
	foldInsert
	foldUpdate
	foldDelete
	// foldVanished is an entity created and deleted inside the chain; the
	// server never needs to hear about it.
	foldVanished
)

// optimizedQueue is the folded form of a pending queue.
type optimizedQueue struct {
	// Updated holds merged records that replace the earliest record of
	// their group.
	Updated []models.LocalChange
	// Removed holds superseded records.
	Removed []string
	// Dropped holds the surviving record of every vanished group; it is
	// marked processed without being sent.
	Dropped []string
	// Send is the net change list in order of first capture.
	Send []models.LocalChange
}

type changeGroup struct {
	changes []models.LocalChange
}

// optimizeChanges folds changes, ordered by capture time, into at most one
// net change per (table, entity).
func optimizeChanges(changes []models.LocalChange, idField string) optimizedQueue {
	var (
		order  []string
		groups = make(map[string]*changeGroup)
	)

	for _, change := range changes {
		key := change.Table + "\x00" + change.EntityID(idField)
		if change.EntityID(idField) == "" {
			key = "\x01" + change.ID
		}

		g, ok := groups[key]
		if !ok {
			g = &changeGroup{}
			groups[key] = g
			order = append(order, key)
		}
		g.changes = append(g.changes, change)
	}

	var out optimizedQueue
	for _, key := range order {
		g := groups[key]
		first := g.changes[0]

		if len(g.changes) == 1 {
			out.Send = append(out.Send, first)
			continue
		}

		for _, superseded := range g.changes[1:] {
			out.Removed = append(out.Removed, superseded.ID)
		}

		state, data := foldGroup(g.changes, idField)
		if state == foldVanished {
			out.Dropped = append(out.Dropped, first.ID)
			continue
		}

		net := first
		net.Data = data
		net.UpdatedAt = g.changes[len(g.changes)-1].UpdatedAt
		switch state {
		case foldInsert:
			net.Operation = models.OperationInsert
		case foldUpdate:
			net.Operation = models.OperationUpdate
		case foldDelete:
			net.Operation = models.OperationDelete
		}

		out.Updated = append(out.Updated, net)
		out.Send = append(out.Send, net)
	}

	return out
}

func foldGroup(changes []models.LocalChange, idField string) (foldState, map[string]any) {
	state := foldNone
	var data map[string]any

	for _, change := range changes {
		switch state {
		case foldNone:
			switch change.Operation {
			case models.OperationInsert:
				state, data = foldInsert, maps.Clone(change.Data)
			case models.OperationUpdate:
				state, data = foldUpdate, maps.Clone(change.Data)
			case models.OperationDelete:
				state, data = foldDelete, idOnly(change.Data, idField)
			}

		case foldInsert:
			switch change.Operation {
			case models.OperationInsert:
				data = maps.Clone(change.Data)
			case models.OperationUpdate:
				data = merge(data, change.Data)
			case models.OperationDelete:
				state, data = foldVanished, nil
			}

		case foldUpdate:
			switch change.Operation {
			case models.OperationInsert, models.OperationUpdate:
				data = merge(data, change.Data)
			case models.OperationDelete:
				state, data = foldDelete, idOnly(change.Data, idField)
			}

		case foldDelete:
			// a delete is only reached from an entity that existed before
			// the chain, so a re-insert overwrites it
			if change.Operation == models.OperationInsert {
				state, data = foldUpdate, maps.Clone(change.Data)
			}

		case foldVanished:
			if change.Operation == models.OperationInsert {
				state, data = foldInsert, maps.Clone(change.Data)
			}
		}
	}

	return state, data
}

func merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	maps.Copy(out, dst)
	maps.Copy(out, src)
	return out
}

func idOnly(data map[string]any, idField string) map[string]any {
	return map[string]any{idField: data[idField]}
}
