package domain

// Inventory maps goods to their counts. Keys with a count of zero or less never persist.
type Inventory map[GoodID]int

// Count returns the quantity held of a good
func (inv Inventory) Count(good GoodID) int {
	return inv[good]
}

// Add increases a good's count. Non-positive quantities are ignored.
func (inv Inventory) Add(good GoodID, qty int) {
	if qty <= 0 {
		return
	}
	inv[good] += qty
}

// Remove decreases a good's count and deletes the key when it reaches zero.
// It returns false without mutating when fewer than qty are held.
func (inv Inventory) Remove(good GoodID, qty int) bool {
	if qty <= 0 || inv[good] < qty {
		return false
	}
	inv[good] -= qty
	if inv[good] <= 0 {
		delete(inv, good)
	}
	return true
}

// Normalize drops any zero or negative entries
func (inv Inventory) Normalize() {
	for good, qty := range inv {
		if qty <= 0 {
			delete(inv, good)
		}
	}
}

// Clone returns an independent copy
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for good, qty := range inv {
		out[good] = qty
	}
	return out
}
