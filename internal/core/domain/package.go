package domain

import "strings"

// PackageMeta identifies one package going through the pipeline.
type PackageMeta struct {
	Name      string // upstream package name, e.g. "rclcpp_components"
	Version   string // filled from the descriptor when empty
	Arch      string // target architecture, e.g. "aarch64"
	OSRelease string // target OS release string, e.g. "oe2403"
}

// DescriptorName returns the normalized descriptor package name,
// prefix plus the hyphenated upstream name ("ros-jazzy" + "demo_pkg"
// gives "ros-jazzy-demo-pkg"). An empty prefix yields the bare
// hyphenated name.
func (m PackageMeta) DescriptorName(prefix string) string {
	hyphenated := strings.ReplaceAll(m.Name, "_", "-")
	if prefix == "" {
		return hyphenated
	}
	return prefix + "-" + hyphenated
}

// PackageRef locates a package's files inside a workspace.
type PackageRef struct {
	Name      string // manifest package name
	SourceDir string // package source checkout
	SpecDir   string // directory holding the generated descriptor
	SpecPath  string // the descriptor to sanitize
}

// BatchItem is one (descriptor, metadata) tuple of a batch.
type BatchItem struct {
	Meta PackageMeta
	Ref  PackageRef
	Raw  string // raw descriptor text
}

// Batch is the unit the pipeline is invoked over. Items are independent:
// no state is shared between them, which is what makes a batch safe to
// process concurrently in any order.
type Batch struct {
	Items []BatchItem
}
