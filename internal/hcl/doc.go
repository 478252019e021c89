// Package hcl provides the HCL implementation of project description
// loading. It is responsible for file discovery, parsing, HCL-to-design
// translation and the evaluation of open tool option bodies into CTY values.
package hcl
