package engine

// LayerMask selects collision layers. Bit i set means layer i participates.
type LayerMask uint32

const AllLayers LayerMask = ^LayerMask(0)

// LayerBit returns the mask containing only layer i. Layers outside 0..31 map
// to the empty mask.
func LayerBit(layer int) LayerMask {
	if layer < 0 || layer > 31 {
		return 0
	}
	return LayerMask(1) << uint(layer)
}

func Layers(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= LayerBit(l)
	}
	return m
}

func (m LayerMask) Contains(layer int) bool {
	return m&LayerBit(layer) != 0
}

func (m LayerMask) Overlaps(other LayerMask) bool {
	return m&other != 0
}
