// Package phantom implements the build pipeline stages for the Phantom SPH
// code: obtaining and pinning the source repository, patching, compiling,
// setting up calculation run directories, and submitting job scripts. Every
// stage shells out to an external tool (git, make, the compiled phantomsetup
// binary, sbatch) through the Runner abstraction and fails fast with a typed
// error on the first non-zero exit.
package phantom
