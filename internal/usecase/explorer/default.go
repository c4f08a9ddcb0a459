package explorer

// DefaultDocument is loaded when nothing else is requested: the Ponziani
// opening prepared from black's side.
const DefaultDocument = `e4 e5 Nf3 Nc6 c3:
  - Bc5 d4 exd4 cxd4 Bb4+ Nc3 d6 d5 Ne5 Qa4+
  - d6 d4 Nf6 h3:
    - Be6? d5
    - Nxe4? d5 Ne7 Qa4+
  - d5 Qa4:
    - Bd7 exd5 Nd4 Qd1
    - dxe4 Nxe5 Qd5 Nxc6:
      - Qxc6? Bb5
      - bxc6 Bc4
  - Nf6 d4:
    - exd4 e5:
      - Ne4 Qe2:
        - d5 exd6 Bf5 Nbd2
        - Nc5 cxd4:
          - Ne6 d5:
            - Ncd4 Nxd4 Nxd4 Qe4
            - Ned4 Nxd4 Nxd4 Qe4
      - Qe7 cxd4 d6 Bb5 dxe5 dxe5 Ng4 0-0 Nxe5 Nxe5 Qxe5 Re1
      - Nd5 Qb3 Nb6 cxd4 d5 Bb5 Bb4+? Qxb4
    - Nxe4 d5 Ne7 Nxe5:
      - d6? Bb5+:
        - Bd7 Bxd7 Qxd7 Nxd7
        - c6 dxc6:
          - dxe5 cxb7+ Bd7 bxa8Q
          - bxc6 Nxc6 Nxc6 Bxc6+ Bd7 Bxe4 Qe7 O-O Qxe4 Re1
          - Qb6 cxb7+ Qxb5 bxa8Q
          - Nxc6 Nxc6:
            - Qb6 Nd4
            - bxc6 Bxc6+ Bd7 Bxe4 Qe7 O-O Qxe4 Re1
`
