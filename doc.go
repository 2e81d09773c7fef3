// Package formula parses arithmetic formulas over complex-valued variables
// and compiles them into reusable numeric evaluators.
//
// A formula is written over the variables z, z1, z2, …, the distinguished
// constant c, the imaginary unit i, decimal literals, the operators
// + - * / ^, and thirteen functions: sin, cos, tan, sinh, cosh, tanh, exp,
// log, abs, pos, ang, re, im. Whitespace is insignificant everywhere, even
// inside names and numbers. Every operator level is left-associative,
// including ^, so 2^3^2 is (2^3)^2.
//
// Parse a formula once, compile it per numeric type, then evaluate it many
// times while mutating the evaluator's variable table. This suits inner
// loops of iterated maps, where something like z*z+c is evaluated once per
// iteration with a new z.
package formula
