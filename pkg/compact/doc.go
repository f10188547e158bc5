// Package compact decodifica o formato texto compacto da exchange
// (listagem de mercados e preços de mercado).
//
// O formato usa vários níveis de delimitadores: ':' separa registros
// (e o cabeçalho dos runners), '~' separa campos, '|' separa os níveis de
// preço de um runner, ';' separa runners removidos e ',' os campos de cada
// runner removido. Um delimitador precedido de '\' é literal.
//
// Todas as funções são puras e seguras para uso concorrente.
package compact
