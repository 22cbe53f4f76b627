package internal

// dependencyLink records a node read during the last evaluation of a derived
// node, together with the version that was observed.
type dependencyLink struct {
	dep     *Node
	version uint64
}

type dependencies struct {
	links []dependencyLink
}

// link registers dep once per evaluation and links sub as its observer.
func (d *dependencies) link(sub observer, dep *Node) {
	for _, l := range d.links {
		if l.dep == dep {
			return
		}
	}

	d.links = append(d.links, dependencyLink{dep: dep, version: dep.version})
	dep.addObserver(sub)
}

// changed reports whether any dependency moved past the observed version.
// Derived dependencies are brought up to date first, in read order.
func (d *dependencies) changed() bool {
	for _, l := range d.links {
		if l.dep.Version() != l.version {
			return true
		}
	}

	return false
}

func (d *dependencies) clear(sub observer) {
	for _, l := range d.links {
		l.dep.removeObserver(sub)
	}

	d.links = nil
}

func (d *dependencies) len() int {
	return len(d.links)
}
